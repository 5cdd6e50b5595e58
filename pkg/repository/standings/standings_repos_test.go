package standings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/accstats/pkg/model"
	sessionrepos "github.com/mpapenbr/accstats/pkg/repository/session"
	base "github.com/mpapenbr/accstats/testsupport/basedata"
	"github.com/mpapenbr/accstats/testsupport/testdb"
)

func TestLoadLapRecords(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	s := base.CreateSampleSession(pool, base.TestTime(),
		[]time.Duration{30 * time.Second, 31 * time.Second},
		nil)

	got, err := LoadLapRecords(ctx, pool, []string{"monza"})
	require.NoError(t, err)
	// two splits of the first lap, one record for the lap without splits
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Sector)
	assert.Equal(t, 30*time.Second, got[0].SectorTime)
	assert.Equal(t, 2, got[1].Sector)
	assert.Equal(t, got[0].LapID, got[1].LapID)
	assert.Equal(t, 61*time.Second, got[0].Time)
	assert.Equal(t, 0, got[2].Sector)
	assert.Equal(t, s.ID, got[0].SessionID)
	assert.Equal(t, model.Race, got[0].SessionType)
	assert.Equal(t, base.SampleDriver().ID, got[0].Driver.ID)

	got, err = LoadLapRecords(ctx, pool, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = LoadLapRecords(ctx, pool, []string{"spa"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTracks(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	base.CreateSampleSession(pool, base.TestTime(), []time.Duration{time.Minute})
	spa := &model.Session{SessionKey: base.SampleSessionKey(), Timestamp: base.TestTime().Add(time.Hour)}
	spa.Track = "spa"
	require.NoError(t, sessionrepos.Create(ctx, pool, spa))

	got, err := LoadTracks(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"spa", "monza"}, got)

	got, err = LoadDriverTracks(ctx, pool, base.SampleDriver().ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"monza"}, got)
}
