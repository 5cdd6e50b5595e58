package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/accstats/pkg/leaderboard"
	"github.com/mpapenbr/accstats/pkg/model"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0.000"},
		{"sector", 31456 * time.Millisecond, "31.456"},
		{"lap", 107123 * time.Millisecond, "1:47.123"},
		{"padded seconds", 62005 * time.Millisecond, "1:02.005"},
		{"long", 10*time.Minute + 500*time.Millisecond, "10:00.500"},
		{"sub millis truncated", 1234567 * time.Microsecond, "1.234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func sampleBoard() *leaderboard.Leaderboard {
	g := ms(500)
	return &leaderboard.Leaderboard{Tracks: []*leaderboard.Track{{
		Name:        "monza",
		DisplayName: "Monza",
		BestSectors: []time.Duration{ms(30000), ms(30000), ms(30000)},
		FastestLap:  ms(90000),
		OptimalLap:  ms(90000),
		Latest:      time.Date(2024, 4, 28, 11, 10, 0, 0, time.UTC),
		Rows: []*leaderboard.Row{
			{
				Driver:      model.Driver{FirstName: "Ann", LastName: "Able", ShortName: "ABL"},
				Flag:        "DE",
				SessionType: model.Race,
				Car:         "Porsche 992 GT3 R",
				Lap:         leaderboard.Timing{Time: ms(90000), Tag: leaderboard.TagPurple},
				Optimal:     leaderboard.Timing{Time: ms(90000), Tag: leaderboard.TagPurple},
				Sectors: []leaderboard.Timing{
					{Time: ms(30000), Tag: leaderboard.TagPurple},
					{Time: ms(30000), Tag: leaderboard.TagPurple},
					{Time: ms(30000), Tag: leaderboard.TagPurple},
				},
				ValidLaps: 3, TotalLaps: 4,
			},
			{
				Driver:  model.Driver{FirstName: "Bob", LastName: "Baker", ShortName: "BAK"},
				Lap:     leaderboard.Timing{Time: ms(90500), Tag: leaderboard.TagGreen},
				Optimal: leaderboard.Timing{Time: ms(90400), Tag: leaderboard.TagGreen},
				Gap:     &g, Interval: &g,
				ValidLaps: 1, TotalLaps: 1,
			},
		},
	}}}
}

func TestLeaderboardPlain(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Leaderboard(buf, sampleBoard()))
	out := buf.String()
	assert.Contains(t, out, "Monza")
	assert.Contains(t, out, "Ann Able (ABL)")
	assert.Contains(t, out, "1:30.000*")
	assert.Contains(t, out, "1:30.500+")
	assert.Contains(t, out, "+0.500")
	assert.Contains(t, out, "3/4")
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "Ann Able"), strings.Index(out, "Bob Baker"))
}

func TestLeaderboardColors(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Leaderboard(buf, sampleBoard(), WithColors(true)))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.NotContains(t, buf.String(), "1:30.000*")
}

func TestLeaderboardEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Leaderboard(buf, &leaderboard.Leaderboard{}))
	assert.Equal(t, "no laps recorded\n", buf.String())
}

func TestDriver(t *testing.T) {
	dv := &leaderboard.DriverView{
		Driver:    model.Driver{FirstName: "Ann", LastName: "Able", ShortName: "ABL"},
		Country:   "Germany",
		Flag:      "DE",
		ValidLaps: 1, TotalLaps: 2,
		Tracks: []*leaderboard.DriverTrack{{
			Name: "monza", DisplayName: "Monza", ValidLaps: 1, TotalLaps: 2,
			Laps: []*leaderboard.DriverLap{
				{
					SessionType: model.Race, Valid: true,
					Lap: leaderboard.Timing{Time: ms(90000), Tag: leaderboard.TagPurple},
				},
				{
					SessionType: model.Race, Valid: false,
					Lap: leaderboard.Timing{Time: ms(88000)},
				},
			},
		}},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, Driver(buf, dv))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Ann Able (ABL) Germany (DE)  laps 1/2\n"))
	assert.Contains(t, out, "1:30.000*")
	assert.Contains(t, out, "1:28.000")
	assert.Contains(t, out, "invalid")
}

func TestTracks(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Tracks(buf, []string{"spa", "nurburgring_24h"}))
	out := buf.String()
	assert.Contains(t, out, "Nurburgring 24h")
	assert.Contains(t, out, "nurburgring_24h")
	assert.Less(t, strings.Index(out, "spa"), strings.Index(out, "nurburgring_24h"))
}
