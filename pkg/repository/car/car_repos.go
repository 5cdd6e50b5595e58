package car

import (
	"context"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
)

// Upsert stores the car of a session. A car with the same race number in the
// same session is replaced, the id is kept. Assigns the id to c.ID.
func Upsert(ctx context.Context, conn repository.Querier, c *model.Car) error {
	row := conn.QueryRow(ctx, `
	insert into car (
		session_id, race_number, model, cup_category, car_group, team_name, ballast_kg
	) values ($1,$2,$3,$4,$5,$6,$7)
	on conflict (session_id, race_number) do update set
		model=excluded.model,
		cup_category=excluded.cup_category,
		car_group=excluded.car_group,
		team_name=excluded.team_name,
		ballast_kg=excluded.ballast_kg
	returning id
	`,
		c.SessionID, c.RaceNumber, c.Model, c.CupCategory, c.CarGroup, c.TeamName,
		c.BallastKg,
	)
	return row.Scan(&c.ID)
}

//nolint:whitespace // can't make both the linter and editor happy :(
func LoadBySessionID(
	ctx context.Context,
	conn repository.Querier,
	sessionID int64,
) ([]*model.Car, error) {
	rows, err := conn.Query(ctx, `
	select id, session_id, race_number, model, cup_category, car_group, team_name, ballast_kg
	from car where session_id=$1 order by race_number
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Car{}
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.ID, &c.SessionID, &c.RaceNumber, &c.Model,
			&c.CupCategory, &c.CarGroup, &c.TeamName, &c.BallastKg); err != nil {
			return nil, err
		}
		ret = append(ret, &c)
	}
	return ret, rows.Err()
}
