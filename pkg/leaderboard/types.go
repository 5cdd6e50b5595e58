package leaderboard

import (
	"time"

	"github.com/mpapenbr/accstats/pkg/model"
)

// Tag marks a time as the best of the track (purple) or of the driver (green)
type Tag int

const (
	TagNone Tag = iota
	TagGreen
	TagPurple
)

func (t Tag) String() string {
	switch t {
	case TagGreen:
		return "green"
	case TagPurple:
		return "purple"
	default:
		return ""
	}
}

type Timing struct {
	Time time.Duration
	Tag  Tag
}

type (
	Leaderboard struct {
		// most recently driven track first
		Tracks []*Track
	}
	Track struct {
		Name        string
		DisplayName string
		// element-wise best sector times of all drivers
		BestSectors []time.Duration
		FastestLap  time.Duration
		// sum of BestSectors
		OptimalLap time.Duration
		Latest     time.Time
		// ordered by lap time
		Rows []*Row
	}
	// Row is the fastest valid lap of a driver on a track
	Row struct {
		Driver      model.Driver
		Country     string
		Flag        string
		LapID       int64
		SessionType model.SessionType
		Timestamp   time.Time
		Car         string
		BallastKg   *int
		Lap         Timing
		Optimal     Timing
		// nil for the first row
		Gap      *time.Duration
		Interval *time.Duration
		// sector times of the fastest lap
		Sectors []Timing
		// best sector times of the driver on this track
		BestSectors []Timing
		ValidLaps   int
		TotalLaps   int
	}
)

type (
	DriverView struct {
		Driver    model.Driver
		Country   string
		Flag      string
		ValidLaps int
		TotalLaps int
		// most recently driven track first
		Tracks []*DriverTrack
	}
	DriverTrack struct {
		Name        string
		DisplayName string
		ValidLaps   int
		TotalLaps   int
		// chronological
		Laps []*DriverLap
	}
	DriverLap struct {
		LapID       int64
		SessionType model.SessionType
		Timestamp   time.Time
		Car         string
		BallastKg   *int
		Valid       bool
		Lap         Timing
		Sectors     []Timing
	}
)
