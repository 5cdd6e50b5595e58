// Package resultfile decodes the session result and entry list files written
// by the race server.
package resultfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/normalize"
)

type (
	SessionFile struct {
		Name    string
		Session model.Session
		Cars    []CarEntry
		Laps    []LapEntry
	}
	// CarEntry is a car of the leaderboard. CarIdx is the car id used by the
	// laps of the same file.
	CarEntry struct {
		CarIdx  int
		Car     model.Car
		Drivers []model.Driver
	}
	LapEntry struct {
		CarIdx      int
		DriverIndex int
		Time        time.Duration
		Valid       bool
		Splits      []time.Duration
	}
	EntryList struct {
		Drivers []model.Driver
	}
)

// Fingerprints returns the set of sector time tuples of all laps
func (f *SessionFile) Fingerprints() model.FingerprintSet {
	ret := model.NewFingerprintSet()
	for i := range f.Laps {
		ret.Add(f.Laps[i].Splits)
	}
	return ret
}

// ParseSession decodes canonical json (see normalize.Normalize) of the session
// result file name. The session timestamp is taken from the file name.
func ParseSession(name string, canonical []byte, loc *time.Location) (*SessionFile, error) {
	var data sessionJSON
	if err := decodeObject(canonical, &data); err != nil {
		return nil, err
	}
	ts, err := TimestampFromFilename(name, loc)
	if err != nil {
		return nil, err
	}
	sessionType := data.SessionType
	if sessionType == "" {
		sessionType = sessionTypeFromFilename(name)
	}
	ret := &SessionFile{
		Name: name,
		Session: model.Session{
			SessionKey: model.SessionKey{
				Track:      data.TrackName,
				Type:       model.ParseSessionType(sessionType),
				ServerName: data.ServerName,
				Wet:        data.SessionResult.IsWetSession != 0,
			},
			Timestamp: ts,
		},
		Cars: make([]CarEntry, 0, len(data.SessionResult.LeaderBoardLines)),
		Laps: make([]LapEntry, 0, len(data.Laps)),
	}
	for _, line := range data.SessionResult.LeaderBoardLines {
		entry, err := toCarEntry(&line.Car)
		if err != nil {
			return nil, err
		}
		ret.Cars = append(ret.Cars, entry)
	}
	for i := range data.Laps {
		lap := &data.Laps[i]
		splits := make([]time.Duration, len(lap.Splits))
		for j, s := range lap.Splits {
			splits[j] = time.Duration(s) * time.Millisecond
		}
		ret.Laps = append(ret.Laps, LapEntry{
			CarIdx:      lap.CarID,
			DriverIndex: lap.DriverIndex,
			Time:        time.Duration(lap.Laptime) * time.Millisecond,
			Valid:       lap.IsValidForBest,
			Splits:      splits,
		})
	}
	return ret, nil
}

func toCarEntry(c *carJSON) (CarEntry, error) {
	entry := CarEntry{
		CarIdx: c.CarID,
		Car: model.Car{
			RaceNumber:  c.RaceNumber,
			Model:       c.CarModel,
			CupCategory: c.CupCategory,
			CarGroup:    c.CarGroup,
			TeamName:    c.TeamName,
			BallastKg:   c.BallastKg,
		},
		Drivers: make([]model.Driver, 0, len(c.Drivers)),
	}
	for _, d := range c.Drivers {
		id, err := ParseDriverID(d.PlayerID)
		if err != nil {
			return CarEntry{}, err
		}
		entry.Drivers = append(entry.Drivers, model.Driver{
			ID:        id,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			ShortName: d.ShortName,
		})
	}
	return entry, nil
}

// ParseEntryList decodes canonical json of an entry list file
func ParseEntryList(canonical []byte) (*EntryList, error) {
	var data entryListJSON
	if err := decodeObject(canonical, &data); err != nil {
		return nil, err
	}
	ret := &EntryList{}
	for _, entry := range data.Entries {
		for _, d := range entry.Drivers {
			id, err := ParseDriverID(d.PlayerID)
			if err != nil {
				return nil, err
			}
			ret.Drivers = append(ret.Drivers, model.Driver{
				ID:          id,
				FirstName:   d.FirstName,
				LastName:    d.LastName,
				ShortName:   d.ShortName,
				Nickname:    d.NickName,
				Nationality: d.Nationality,
			})
		}
	}
	return ret, nil
}

// decodeObject unmarshals canonical into v. Only a json object is accepted,
// json.Unmarshal would leave v untouched for null.
func decodeObject(canonical []byte, v any) error {
	trimmed := bytes.TrimSpace(canonical)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: top level value is not an object", normalize.ErrMalformedJSON)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %w", normalize.ErrMalformedJSON, err)
	}
	return nil
}

// ParseDriverID converts "S76561198000000000" into its numeric part.
// The prefix is a single uppercase letter, the remainder decimal digits only.
func ParseDriverID(playerID string) (int64, error) {
	if len(playerID) < 2 || playerID[0] < 'A' || playerID[0] > 'Z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, playerID)
	}
	digits := playerID[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, playerID)
		}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidIdentifier, playerID, err)
	}
	return id, nil
}
