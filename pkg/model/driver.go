package model

import "fmt"

type Driver struct {
	ID          int64
	FirstName   string
	LastName    string
	ShortName   string
	Nickname    *string
	Nationality *int
}

func (d Driver) DisplayName() string {
	return fmt.Sprintf("%s %s (%s)", d.FirstName, d.LastName, d.ShortName)
}

// PlayerID returns the driver id in the vendor format
func (d Driver) PlayerID() string {
	return fmt.Sprintf("S%d", d.ID)
}
