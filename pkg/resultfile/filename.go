package resultfile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindSession
	KindEntryList
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindEntryList:
		return "entrylist"
	default:
		return "unknown"
	}
}

const (
	timestampLen    = 13
	timestampLayout = "060102_150405"
	entryListSuffix = "entrylist.json"
)

// YYMMDD_HHMMSS, one session index character, the session type, .json
// (the server writes "FP" for free practice)
var sessionFilePattern = regexp.MustCompile(`^\d{6}_\d{6}.F?([PQR])\.json$`)

// Classify routes a file by the shape of its name. Only the base name is considered.
func Classify(path string) Kind {
	name := filepath.Base(path)
	switch {
	case sessionFilePattern.MatchString(name):
		return KindSession
	case strings.HasSuffix(name, entryListSuffix):
		return KindEntryList
	default:
		return KindUnknown
	}
}

// sessionTypeFromFilename returns the type letter of a session file name or ""
func sessionTypeFromFilename(name string) string {
	m := sessionFilePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return ""
	}
	return m[1]
}

// TimestampFromFilename parses the leading YYMMDD_HHMMSS of name as wall clock
// time in loc and converts it to UTC.
func TimestampFromFilename(name string, loc *time.Location) (time.Time, error) {
	name = filepath.Base(name)
	if len(name) < timestampLen {
		return time.Time{}, fmt.Errorf("%w: %q too short", ErrTimestamp, name)
	}
	wall, err := time.Parse(timestampLayout, name[:timestampLen])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrTimestamp, err)
	}
	ts, err := resolveWallClock(wall, loc)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// resolveWallClock finds the instants whose wall clock in loc matches the
// fields of wall. During a DST fall-back there are two, the earliest is used.
// Wall clock times skipped by a spring-forward transition do not exist.
func resolveWallClock(wall time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	offsets := map[int]struct{}{}
	// transitions are far more than a day apart, probing a day before and after
	// yields every offset that could apply
	for _, probe := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, offset := wall.Add(probe).In(loc).Zone()
		offsets[offset] = struct{}{}
	}
	var found *time.Time
	for offset := range offsets {
		candidate := wall.Add(-time.Duration(offset) * time.Second).In(loc)
		if !sameWallClock(candidate, wall) {
			continue
		}
		if found == nil || candidate.Before(*found) {
			c := candidate
			found = &c
		}
	}
	if found == nil {
		return time.Time{}, fmt.Errorf("%w: %s does not exist in %s",
			ErrTimestamp, wall.Format(time.DateTime), loc)
	}
	return *found, nil
}

func sameWallClock(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}
