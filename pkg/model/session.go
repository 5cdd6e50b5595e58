package model

import (
	"strings"
	"time"
)

type SessionType string

const (
	Practice   SessionType = "P"
	Qualifying SessionType = "Q"
	Race       SessionType = "R"
)

// ParseSessionType maps the vendor session type to P, Q or R.
// The server writes "FP" for free practice. Unknown values are kept as they are.
func ParseSessionType(s string) SessionType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P", "FP":
		return Practice
	case "Q":
		return Qualifying
	case "R":
		return Race
	default:
		return SessionType(s)
	}
}

func (t SessionType) String() string {
	switch t {
	case Practice:
		return "Practice"
	case Qualifying:
		return "Qualifying"
	case Race:
		return "Race"
	default:
		return "Unknown"
	}
}

// SessionKey identifies a logical session. Several generations of the same
// logical session may be stored until they are resolved by supersession.
type SessionKey struct {
	Track      string
	Type       SessionType
	ServerName string
	Wet        bool
}

type Session struct {
	ID int64
	SessionKey
	Timestamp time.Time
}
