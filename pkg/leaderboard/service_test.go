package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/accstats/pkg/model"
	base "github.com/mpapenbr/accstats/testsupport/basedata"
	"github.com/mpapenbr/accstats/testsupport/testdb"
)

func TestTracksKey(t *testing.T) {
	assert.Equal(t, "", tracksKey(nil))
	assert.Equal(t, tracksKey([]string{"spa", "monza"}), tracksKey([]string{"monza", "spa", "spa", ""}))
}

func TestService(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	base.CreateSampleSession(pool, base.TestTime(), ms(30000, 31000, 32000), ms(29000, 31500, 32000))

	svc := NewService(pool, WithTTL(time.Hour))
	lb, err := svc.Leaderboard(ctx, nil)
	require.NoError(t, err)
	require.Len(t, lb.Tracks, 1)
	require.Len(t, lb.Tracks[0].Rows, 1)
	row := lb.Tracks[0].Rows[0]
	assert.Equal(t, 92500*time.Millisecond, row.Lap.Time)
	assert.Equal(t, 92000*time.Millisecond, row.Optimal.Time)
	assert.Equal(t, 2, row.TotalLaps)

	// results are reused until they expire
	base.CreateSampleSession(pool, base.TestTime().Add(time.Hour), ms(20000, 20000, 20000))
	cached, err := svc.Leaderboard(ctx, []string{})
	require.NoError(t, err)
	assert.Same(t, lb, cached)

	fresh, err := NewService(pool).Leaderboard(ctx, []string{"monza"})
	require.NoError(t, err)
	assert.Equal(t, 60000*time.Millisecond, fresh.Tracks[0].Rows[0].Lap.Time)

	dv, err := svc.Driver(ctx, base.SampleDriver().ID)
	require.NoError(t, err)
	assert.Equal(t, 3, dv.TotalLaps)
	assert.Equal(t, model.Race, dv.Tracks[0].Laps[0].SessionType)

	tracks, err := svc.Tracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"monza"}, tracks)

	_, err = svc.Driver(ctx, 42)
	assert.ErrorIs(t, err, ErrDriverNotFound)
}
