package model

import "time"

type Lap struct {
	ID        int64
	DriverID  int64
	SessionID int64
	CarID     int64
	Time      time.Duration
	Valid     bool
	// sector times, index 0 holds sector 1
	Splits []time.Duration
}
