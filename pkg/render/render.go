package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/mpapenbr/accstats/pkg/leaderboard"
	"github.com/mpapenbr/accstats/pkg/lookup"
)

const tsLayout = "2006-01-02 15:04"

type (
	Option func(*config)
	config struct {
		colors bool
		style  table.Style
	}
)

// WithColors selects ANSI colors for tags. Without colors purple times are
// suffixed with "*" and green times with "+".
func WithColors(enabled bool) Option {
	return func(c *config) {
		c.colors = enabled
	}
}

func WithStyle(style table.Style) Option {
	return func(c *config) {
		c.style = style
	}
}

func newConfig(opts []Option) *config {
	c := &config{style: table.StyleRounded}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormatDuration formats d as m:ss.mmm, or s.mmm for times below a minute.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	minutes := ms / 60000
	secs := (ms % 60000) / 1000
	millis := ms % 1000
	if minutes == 0 {
		return fmt.Sprintf("%s%d.%03d", sign, secs, millis)
	}
	return fmt.Sprintf("%s%d:%02d.%03d", sign, minutes, secs, millis)
}

func (c *config) timing(t leaderboard.Timing) string {
	s := FormatDuration(t.Time)
	switch t.Tag {
	case leaderboard.TagPurple:
		if c.colors {
			return text.Colors{text.FgMagenta, text.Bold}.Sprint(s)
		}
		return s + "*"
	case leaderboard.TagGreen:
		if c.colors {
			return text.FgGreen.Sprint(s)
		}
		return s + "+"
	default:
		return s
	}
}

func (c *config) sectors(timings []leaderboard.Timing) string {
	ret := ""
	for i, t := range timings {
		if i > 0 {
			ret += " "
		}
		ret += c.timing(t)
	}
	return ret
}

func gap(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return "+" + FormatDuration(*d)
}

func ballast(kg *int) string {
	if kg == nil || *kg == 0 {
		return ""
	}
	return strconv.Itoa(*kg) + " kg"
}

func laps(valid, total int) string {
	return fmt.Sprintf("%d/%d", valid, total)
}

// Leaderboard writes one table per track
func Leaderboard(w io.Writer, lb *leaderboard.Leaderboard, opts ...Option) error {
	c := newConfig(opts)
	if lb == nil || len(lb.Tracks) == 0 {
		_, err := fmt.Fprintln(w, "no laps recorded")
		return err
	}
	for i, track := range lb.Tracks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(c.style)
		t.SetTitle("%s (last driven %s)", track.DisplayName, track.Latest.Format(tsLayout))
		t.AppendHeader(table.Row{
			"#", "Driver", "Nat", "Car", "Ballast", "Lap", "Gap", "Int",
			"Sectors", "Best sectors", "Optimal", "Laps", "Session", "Date",
		})
		for pos, row := range track.Rows {
			t.AppendRow(table.Row{
				pos + 1,
				row.Driver.DisplayName(),
				row.Flag,
				row.Car,
				ballast(row.BallastKg),
				c.timing(row.Lap),
				gap(row.Gap),
				gap(row.Interval),
				c.sectors(row.Sectors),
				c.sectors(row.BestSectors),
				c.timing(row.Optimal),
				laps(row.ValidLaps, row.TotalLaps),
				row.SessionType.String(),
				row.Timestamp.Format(tsLayout),
			})
		}
		t.AppendFooter(table.Row{
			"", "Track best", "", "", "",
			FormatDuration(track.FastestLap), "", "",
			c.sectors(lo.Map(track.BestSectors, func(d time.Duration, _ int) leaderboard.Timing {
				return leaderboard.Timing{Time: d}
			})),
			"",
			FormatDuration(track.OptimalLap),
		})
		t.Render()
	}
	return nil
}

// Tracks writes the track names together with their display names
func Tracks(w io.Writer, tracks []string, opts ...Option) error {
	c := newConfig(opts)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(c.style)
	t.AppendHeader(table.Row{"Track", "Name"})
	for _, name := range tracks {
		t.AppendRow(table.Row{lookup.TrackDisplayName(name), name})
	}
	t.Render()
	return nil
}

// Driver writes the summary of a driver followed by one table per track
func Driver(w io.Writer, dv *leaderboard.DriverView, opts ...Option) error {
	c := newConfig(opts)
	nat := dv.Country
	if dv.Flag != "" {
		nat = fmt.Sprintf("%s (%s)", dv.Country, dv.Flag)
	}
	if _, err := fmt.Fprintf(w, "%s %s  laps %s\n",
		dv.Driver.DisplayName(), nat, laps(dv.ValidLaps, dv.TotalLaps)); err != nil {
		return err
	}
	for _, track := range dv.Tracks {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(c.style)
		t.SetTitle("%s  laps %s", track.DisplayName, laps(track.ValidLaps, track.TotalLaps))
		t.AppendHeader(table.Row{"Date", "Session", "Car", "Ballast", "Lap", "Sectors", "Valid"})
		for _, lap := range track.Laps {
			t.AppendRow(table.Row{
				lap.Timestamp.Format(tsLayout),
				lap.SessionType.String(),
				lap.Car,
				ballast(lap.BallastKg),
				c.timing(lap.Lap),
				c.sectors(lap.Sectors),
				lo.Ternary(lap.Valid, "", "invalid"),
			})
		}
		t.Render()
	}
	return nil
}
