package model

// Car is an entry of a single session. The race number identifies the car
// within that session.
type Car struct {
	ID          int64
	SessionID   int64
	RaceNumber  int
	Model       int
	CupCategory int
	CarGroup    string
	TeamName    string
	BallastKg   *int
}
