package knownfile

import (
	"context"

	"github.com/mpapenbr/accstats/pkg/repository"
)

func Exists(ctx context.Context, conn repository.Querier, path string) (bool, error) {
	var ret bool
	err := conn.QueryRow(ctx,
		"select exists(select 1 from known_file where path=$1)", path).Scan(&ret)
	return ret, err
}

// Create marks path as processed. Must run in the transaction of the file.
func Create(ctx context.Context, conn repository.Querier, path string) error {
	_, err := conn.Exec(ctx, "insert into known_file (path) values ($1)", path)
	return err
}

func Count(ctx context.Context, conn repository.Querier) (int, error) {
	var ret int
	err := conn.QueryRow(ctx, "select count(*) from known_file").Scan(&ret)
	return ret, err
}
