package lap

import (
	"context"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
)

// Create stores the lap and its splits. Sectors are numbered from 1 in the
// order of l.Splits. Assigns the id to l.ID.
func Create(ctx context.Context, conn repository.Querier, l *model.Lap) error {
	row := conn.QueryRow(ctx, `
	insert into lap (
		driver_id, session_id, car_id, time_ms, valid
	) values ($1,$2,$3,$4,$5)
	returning id
	`,
		l.DriverID, l.SessionID, l.CarID, l.Time.Milliseconds(), l.Valid,
	)
	if err := row.Scan(&l.ID); err != nil {
		return err
	}
	for i, s := range l.Splits {
		if _, err := conn.Exec(ctx,
			"insert into split (lap_id, sector, time_ms) values ($1,$2,$3)",
			l.ID, i+1, s.Milliseconds()); err != nil {
			return err
		}
	}
	return nil
}

// CountBySessionID returns the number of laps stored for a session
func CountBySessionID(ctx context.Context, conn repository.Querier, sessionID int64) (int, error) {
	var ret int
	err := conn.QueryRow(ctx, "select count(*) from lap where session_id=$1", sessionID).
		Scan(&ret)
	return ret, err
}
