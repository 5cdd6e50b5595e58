//nolint:whitespace // can't make both the linter and editor happy :(
package standings

import (
	"context"
	"time"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
)

// LoadLapRecords returns one record per lap and split for the given tracks,
// ordered by track, lap id and sector. All tracks are read if tracks is empty.
func LoadLapRecords(
	ctx context.Context,
	conn repository.Querier,
	tracks []string,
) ([]model.LapRecord, error) {
	if len(tracks) == 0 {
		tracks = nil
	}
	rows, err := conn.Query(ctx, `
	select l.id, s.track, s.id, s.session_type, s.ts,
		c.id, c.model, c.ballast_kg,
		d.id, d.first_name, d.last_name, d.short_name, d.nickname, d.nationality,
		l.time_ms, l.valid, sp.sector, sp.time_ms
	from lap l
	join session s on s.id=l.session_id
	join car c on c.id=l.car_id
	join driver d on d.id=l.driver_id
	left join split sp on sp.lap_id=l.id
	where $1::text[] is null or s.track = any($1)
	order by s.track, l.id, sp.sector
	`, tracks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []model.LapRecord{}
	for rows.Next() {
		var r model.LapRecord
		var sessionType string
		var lapMs int64
		var sector *int
		var sectorMs *int64
		if err := rows.Scan(
			&r.LapID, &r.Track, &r.SessionID, &sessionType, &r.Timestamp,
			&r.CarID, &r.CarModel, &r.BallastKg,
			&r.Driver.ID, &r.Driver.FirstName, &r.Driver.LastName, &r.Driver.ShortName,
			&r.Driver.Nickname, &r.Driver.Nationality,
			&lapMs, &r.Valid, &sector, &sectorMs,
		); err != nil {
			return nil, err
		}
		r.SessionType = model.SessionType(sessionType)
		r.Timestamp = r.Timestamp.UTC()
		r.Time = time.Duration(lapMs) * time.Millisecond
		if sector != nil && sectorMs != nil {
			r.Sector = *sector
			r.SectorTime = time.Duration(*sectorMs) * time.Millisecond
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// LoadTracks returns all tracks, the track with the most recent session first
func LoadTracks(ctx context.Context, conn repository.Querier) ([]string, error) {
	return loadStrings(ctx, conn, `
	select track from session
	group by track
	order by max(ts) desc, track
	`)
}

// LoadDriverTracks returns the tracks a driver has laps on, most recent first
func LoadDriverTracks(
	ctx context.Context,
	conn repository.Querier,
	driverID int64,
) ([]string, error) {
	return loadStrings(ctx, conn, `
	select s.track from lap l join session s on s.id=l.session_id
	where l.driver_id=$1
	group by s.track
	order by max(s.ts) desc, s.track
	`, driverID)
}

func loadStrings(
	ctx context.Context,
	conn repository.Querier,
	sql string,
	args ...any,
) ([]string, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		ret = append(ret, s)
	}
	return ret, rows.Err()
}
