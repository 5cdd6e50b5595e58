//nolint:whitespace // can't make both the linter and editor happy :(
package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
)

// Create stores the session and assigns the generated id to s.ID
func Create(ctx context.Context, conn repository.Querier, s *model.Session) error {
	row := conn.QueryRow(ctx, `
	insert into session (
		track, session_type, ts, server_name, wet
	) values ($1,$2,$3,$4,$5)
	returning id
	`,
		s.Track, string(s.Type), s.Timestamp, s.ServerName, s.Wet,
	)
	return row.Scan(&s.ID)
}

// FindPredecessor returns the most recent session with the same identity key
// stored before ts. Returns nil if there is none.
func FindPredecessor(
	ctx context.Context,
	conn repository.Querier,
	key model.SessionKey,
	ts time.Time,
) (*model.Session, error) {
	row := conn.QueryRow(ctx, selector+`
	where track=$1 and session_type=$2 and server_name=$3 and wet=$4 and ts < $5
	order by ts desc, id desc
	limit 1
	`,
		key.Track, string(key.Type), key.ServerName, key.Wet, ts,
	)
	var item model.Session
	if err := scan(&item, row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func LoadByID(ctx context.Context, conn repository.Querier, id int64) (*model.Session, error) {
	row := conn.QueryRow(ctx, selector+" where id=$1", id)
	var item model.Session
	if err := scan(&item, row); err != nil {
		return nil, err
	}
	return &item, nil
}

// LoadFingerprints collects the sector time tuples of all laps of a session
func LoadFingerprints(
	ctx context.Context,
	conn repository.Querier,
	sessionID int64,
) (model.FingerprintSet, error) {
	rows, err := conn.Query(ctx, `
	select l.id, s.time_ms
	from lap l left join split s on s.lap_id=l.id
	where l.session_id=$1
	order by l.id, s.sector
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := model.NewFingerprintSet()
	var current int64 = -1
	var splits []time.Duration
	for rows.Next() {
		var lapID int64
		var ms *int64
		if err := rows.Scan(&lapID, &ms); err != nil {
			return nil, err
		}
		if lapID != current {
			if current != -1 {
				ret.Add(splits)
			}
			current = lapID
			splits = nil
		}
		if ms != nil {
			splits = append(splits, time.Duration(*ms)*time.Millisecond)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if current != -1 {
		ret.Add(splits)
	}
	return ret, nil
}

// DeleteByID removes the session. Cars, laps and splits are removed by cascade.
// Returns the number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int64) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from session where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func Count(ctx context.Context, conn repository.Querier) (int, error) {
	var ret int
	err := conn.QueryRow(ctx, "select count(*) from session").Scan(&ret)
	return ret, err
}

// little helper
const selector = `select id, track, session_type, ts, server_name, wet from session`

func scan(s *model.Session, row pgx.Row) error {
	var sessionType string
	if err := row.Scan(&s.ID, &s.Track, &sessionType, &s.Timestamp,
		&s.ServerName, &s.Wet); err != nil {
		return err
	}
	s.Type = model.SessionType(sessionType)
	s.Timestamp = s.Timestamp.UTC()
	return nil
}
