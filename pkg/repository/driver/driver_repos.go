package driver

import (
	"context"

	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
)

// Upsert refreshes the names of a driver encountered in a session result.
// Nickname and nationality are only known from entry lists and are kept.
func Upsert(ctx context.Context, conn repository.Querier, d *model.Driver) error {
	_, err := conn.Exec(ctx, `
	insert into driver (
		id, first_name, last_name, short_name
	) values ($1,$2,$3,$4)
	on conflict (id) do update set
		first_name=excluded.first_name,
		last_name=excluded.last_name,
		short_name=excluded.short_name
	`,
		d.ID, d.FirstName, d.LastName, d.ShortName,
	)
	return err
}

// UpsertRoster refreshes all attributes of a driver found in an entry list
func UpsertRoster(ctx context.Context, conn repository.Querier, d *model.Driver) error {
	_, err := conn.Exec(ctx, `
	insert into driver (
		id, first_name, last_name, short_name, nickname, nationality
	) values ($1,$2,$3,$4,$5,$6)
	on conflict (id) do update set
		first_name=excluded.first_name,
		last_name=excluded.last_name,
		short_name=excluded.short_name,
		nickname=excluded.nickname,
		nationality=excluded.nationality
	`,
		d.ID, d.FirstName, d.LastName, d.ShortName, d.Nickname, d.Nationality,
	)
	return err
}

func LoadByID(ctx context.Context, conn repository.Querier, id int64) (*model.Driver, error) {
	row := conn.QueryRow(ctx, `
	select id, first_name, last_name, short_name, nickname, nationality
	from driver where id=$1
	`, id)
	var d model.Driver
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.ShortName,
		&d.Nickname, &d.Nationality); err != nil {
		return nil, err
	}
	return &d, nil
}
