//nolint:funlen,errcheck,lll // ok for tests
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/accstats/pkg/normalize"
	driverrepos "github.com/mpapenbr/accstats/pkg/repository/driver"
	knownfilerepos "github.com/mpapenbr/accstats/pkg/repository/knownfile"
	sessionrepos "github.com/mpapenbr/accstats/pkg/repository/session"
	"github.com/mpapenbr/accstats/testsupport/testdb"
)

type testLap struct {
	car    int
	driver int
	splits []int64
}

func lap(splits ...int64) testLap {
	return testLap{car: 1001, driver: 0, splits: splits}
}

func sessionJSON(laps ...testLap) []byte {
	jsonLaps := make([]map[string]any, 0, len(laps))
	for _, l := range laps {
		var total int64
		for _, s := range l.splits {
			total += s
		}
		jsonLaps = append(jsonLaps, map[string]any{
			"carId": l.car, "driverIndex": l.driver, "laptime": total,
			"isValidForBest": true, "splits": l.splits,
		})
	}
	data, _ := json.Marshal(map[string]any{
		"sessionType": "R",
		"trackName":   "monza",
		"serverName":  "testserver",
		"sessionResult": map[string]any{
			"isWetSession": 0,
			"leaderBoardLines": []any{
				map[string]any{"car": map[string]any{
					"carId": 1001, "raceNumber": 7, "carModel": 20, "cupCategory": 0,
					"carGroup": "GT3", "teamName": "",
					"drivers": []any{map[string]any{
						"firstName": "Ann", "lastName": "Able", "shortName": "ABL",
						"playerId": "S76561198000000001",
					}},
				}},
			},
		},
		"laps": jsonLaps,
	})
	return data
}

func utf16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	ret := []byte{0xFF, 0xFE}
	for _, u := range units {
		ret = append(ret, byte(u), byte(u>>8))
	}
	return ret
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func newTestIngester(t *testing.T) (*Ingester, *pgxpool.Pool) {
	t.Helper()
	pool := testdb.InitTestDb()
	ing, err := NewIngester(pool, WithLocation(time.UTC))
	require.NoError(t, err)
	return ing, pool
}

func countSessions(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	n, err := sessionrepos.Count(context.Background(), pool)
	require.NoError(t, err)
	return n
}

func TestHandleFileIdempotent(t *testing.T) {
	ing, pool := newTestIngester(t)
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "230812_201533_R.json",
		utf16LE(string(sessionJSON(lap(30000, 31000, 32000)))))

	outcome, err := ing.HandleFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSession, outcome)

	outcome, err = ing.HandleFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKnown, outcome)
	assert.Equal(t, 1, countSessions(t, pool))

	var laps int
	require.NoError(t, pool.QueryRow(ctx, "select count(*) from lap").Scan(&laps))
	assert.Equal(t, 1, laps)
}

func TestHandleFileSupersession(t *testing.T) {
	a := lap(30000, 31000, 32000)
	b := lap(29000, 31000, 32000)
	c := lap(29500, 31000, 32000)
	x := lap(40000, 40000, 40000)

	tests := []struct {
		name         string
		files        [][]testLap
		wantSessions int
	}{
		{
			name:         "subset replaced",
			files:        [][]testLap{{a}, {a, b}},
			wantSessions: 1,
		},
		{
			name:         "equal replaced",
			files:        [][]testLap{{a, b}, {a, b}},
			wantSessions: 1,
		},
		{
			name:         "not a subset",
			files:        [][]testLap{{a, x}, {a, b}},
			wantSessions: 2,
		},
		{
			name:         "chain replaced",
			files:        [][]testLap{{a}, {b}, {a, b, c}},
			wantSessions: 1,
		},
		{
			name:         "chain stops at first non subset",
			files:        [][]testLap{{a}, {x}, {b}, {a, b}},
			wantSessions: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, pool := newTestIngester(t)
			dir := t.TempDir()
			ts := time.Date(2023, 8, 12, 20, 0, 0, 0, time.UTC)
			for i, laps := range tt.files {
				name := ts.Add(time.Duration(i)*time.Minute).Format("060102_150405") + "_R.json"
				_, err := ing.HandleFile(context.Background(),
					writeFile(t, dir, name, sessionJSON(laps...)))
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSessions, countSessions(t, pool))
		})
	}
}

func TestHandleFileOlderFileDoesNotSupersede(t *testing.T) {
	ing, pool := newTestIngester(t)
	dir := t.TempDir()
	ctx := context.Background()
	_, err := ing.HandleFile(ctx, writeFile(t, dir, "230812_210000_R.json",
		sessionJSON(lap(30000, 31000, 32000), lap(29000, 31000, 32000))))
	require.NoError(t, err)
	// an older generation arriving late is stored, nothing newer is touched
	_, err = ing.HandleFile(ctx, writeFile(t, dir, "230812_200000_R.json",
		sessionJSON(lap(30000, 31000, 32000))))
	require.NoError(t, err)
	assert.Equal(t, 2, countSessions(t, pool))
}

func TestHandleFileMissingReference(t *testing.T) {
	ing, pool := newTestIngester(t)
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		lap  testLap
	}{
		{"unknown car", testLap{car: 9999, driver: 0, splits: []int64{1, 2, 3}}},
		{"driver index out of range", testLap{car: 1001, driver: 1, splits: []int64{1, 2, 3}}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := time.Date(2023, 8, 12, 20, i, 0, 0, time.UTC).Format("060102_150405") + "_R.json"
			path := writeFile(t, dir, name, sessionJSON(lap(30000, 31000, 32000), tt.lap))
			_, err := ing.HandleFile(ctx, path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingReference), "err = %v", err)
			assert.False(t, errors.Is(err, ErrPersistence))

			assert.Equal(t, 0, countSessions(t, pool))
			known, err := knownfilerepos.Exists(ctx, pool, path)
			require.NoError(t, err)
			assert.False(t, known)
			_, err = driverrepos.LoadByID(ctx, pool, 76561198000000001)
			assert.Error(t, err, "driver upsert must be rolled back")
		})
	}
}

func TestHandleFileEncodingError(t *testing.T) {
	ing, pool := newTestIngester(t)
	path := writeFile(t, t.TempDir(), "230812_201533_R.json", []byte{0xFF, 0xFE, 0x00})
	_, err := ing.HandleFile(context.Background(), path)
	assert.True(t, errors.Is(err, normalize.ErrEncoding), "err = %v", err)
	assert.Equal(t, 0, countSessions(t, pool))
}

func TestHandleFileEmptyIsRetried(t *testing.T) {
	ing, pool := newTestIngester(t)
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		data []byte
	}{
		{"zero bytes", []byte{}},
		{"whitespace", []byte("\r\n  ")},
		{"utf16 bom only", []byte{0xFF, 0xFE}},
		{"null", []byte("null")},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := time.Date(2023, 8, 12, 21, i, 0, 0, time.UTC).Format("060102_150405") + "_R.json"
			before := countSessions(t, pool)
			path := writeFile(t, dir, name, tt.data)
			_, err := ing.HandleFile(ctx, path)
			assert.ErrorIs(t, err, normalize.ErrMalformedJSON)
			assert.Equal(t, before, countSessions(t, pool))
			known, err := knownfilerepos.Exists(ctx, pool, path)
			require.NoError(t, err)
			assert.False(t, known)

			// the server finished writing the file
			writeFile(t, dir, name, sessionJSON(lap(30000, 31000, 32000)))
			outcome, err := ing.HandleFile(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, OutcomeSession, outcome)
			known, err = knownfilerepos.Exists(ctx, pool, path)
			require.NoError(t, err)
			assert.True(t, known)
		})
	}
}

func TestHandleFileEntryList(t *testing.T) {
	ing, pool := newTestIngester(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "entrylist.json", []byte(`{"entries":[{"drivers":[
		{"firstName":"Ann","lastName":"Able","shortName":"ABL","nickName":"annie",
		 "playerID":"S76561198000000001","nationality":3}]}]}`))

	outcome, err := ing.HandleFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEntryList, outcome)
	d, err := driverrepos.LoadByID(ctx, pool, 76561198000000001)
	require.NoError(t, err)
	require.NotNil(t, d.Nickname)
	assert.Equal(t, "annie", *d.Nickname)

	// session results keep roster attributes
	_, err = ing.HandleFile(ctx, writeFile(t, dir, "230812_201533_R.json",
		sessionJSON(lap(30000, 31000, 32000))))
	require.NoError(t, err)
	d, err = driverrepos.LoadByID(ctx, pool, 76561198000000001)
	require.NoError(t, err)
	require.NotNil(t, d.Nationality)
	assert.Equal(t, 3, *d.Nationality)
}

func TestHandleFileIgnored(t *testing.T) {
	ing, _ := newTestIngester(t)
	outcome, err := ing.HandleFile(context.Background(), "/does/not/exist/settings.json")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
}

func TestScanDir(t *testing.T) {
	ing, pool := newTestIngester(t)
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "230812_200000_R.json", sessionJSON(lap(30000, 31000, 32000)))
	writeFile(t, dir, "230812_210000_R.json",
		sessionJSON(lap(30000, 31000, 32000), lap(29000, 31000, 32000)))
	writeFile(t, dir, "230812_220000_R.json", []byte(`{"laps": `))
	writeFile(t, dir, "settings.json", []byte(`{}`))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	stats, err := ing.ScanDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Ignored)
	assert.Equal(t, []string{filepath.Join(dir, "230812_220000_R.json")}, stats.FailedFiles)
	// ascending order: the second file supersedes the first
	assert.Equal(t, 1, countSessions(t, pool))

	stats, err = ing.ScanDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Known)
	assert.Equal(t, 1, stats.Failed)
}

func TestScanDirCancelled(t *testing.T) {
	ing, _ := newTestIngester(t)
	dir := t.TempDir()
	writeFile(t, dir, "230812_200000_R.json", sessionJSON(lap(30000, 31000, 32000)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ing.ScanDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
