//nolint:funlen // ok for tests
package session

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

func sec(s ...int) []time.Duration {
	ret := make([]time.Duration, len(s))
	for i := range s {
		ret[i] = time.Duration(s[i]) * time.Second
	}
	return ret
}

func TestCreateAndLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	s := &model.Session{SessionKey: base.SampleSessionKey(), Timestamp: base.TestTime()}
	require.NoError(t, Create(ctx, pool, s))
	assert.NotZero(t, s.ID)

	got, err := LoadByID(ctx, pool, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.SessionKey, got.SessionKey)
	assert.True(t, s.Timestamp.Equal(got.Timestamp))
}

func TestFindPredecessor(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	first := base.CreateSampleSession(pool, base.TestTime())
	second := base.CreateSampleSession(pool, base.TestTime().Add(time.Hour))
	other := &model.Session{SessionKey: base.SampleSessionKey(), Timestamp: base.TestTime()}
	other.Wet = true
	require.NoError(t, Create(ctx, pool, other))

	tests := []struct {
		name   string
		key    model.SessionKey
		ts     time.Time
		wantID int64
	}{
		{"latest before", base.SampleSessionKey(), base.TestTime().Add(2 * time.Hour), second.ID},
		{"skips later", base.SampleSessionKey(), base.TestTime().Add(30 * time.Minute), first.ID},
		{"none before", base.SampleSessionKey(), base.TestTime(), 0},
		{"wet differs", other.SessionKey, base.TestTime().Add(time.Hour), other.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindPredecessor(ctx, pool, tt.key, tt.ts)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestLoadFingerprints(t *testing.T) {
	pool := testdb.InitTestDb()
	s := base.CreateSampleSession(pool, base.TestTime(), sec(30, 31, 32), sec(29, 31, 33))
	got, err := LoadFingerprints(context.Background(), pool, s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NewFingerprintSet(sec(30, 31, 32), sec(29, 31, 33)), got)
}

func TestDeleteByID(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	s := base.CreateSampleSession(pool, base.TestTime(), sec(30, 31, 32))

	num, err := DeleteByID(ctx, pool, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, num)

	var laps, splits, cars int
	require.NoError(t, pool.QueryRow(ctx, "select count(*) from lap").Scan(&laps))
	require.NoError(t, pool.QueryRow(ctx, "select count(*) from split").Scan(&splits))
	require.NoError(t, pool.QueryRow(ctx, "select count(*) from car").Scan(&cars))
	assert.Zero(t, laps+splits+cars)

	num, err = DeleteByID(ctx, pool, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, num)
}
