package model

import "time"

// LapRecord is one row of the leaderboard read: a lap joined with its
// session, car, driver and one of its splits. A lap without splits yields
// a single record with Sector 0.
type LapRecord struct {
	LapID       int64
	Track       string
	SessionID   int64
	SessionType SessionType
	Timestamp   time.Time
	CarID       int64
	CarModel    int
	BallastKg   *int
	Driver      Driver
	Time        time.Duration
	Valid       bool
	Sector      int
	SectorTime  time.Duration
}
