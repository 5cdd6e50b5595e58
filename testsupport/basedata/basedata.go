package basedata

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/accstats/pkg/model"
	carrepos "github.com/mpapenbr/accstats/pkg/repository/car"
	driverrepos "github.com/mpapenbr/accstats/pkg/repository/driver"
	laprepos "github.com/mpapenbr/accstats/pkg/repository/lap"
	sessionrepos "github.com/mpapenbr/accstats/pkg/repository/session"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T11:10:12Z")
	return t
}

func SampleSessionKey() model.SessionKey {
	return model.SessionKey{
		Track:      "monza",
		Type:       model.Race,
		ServerName: "testserver",
		Wet:        false,
	}
}

func SampleDriver() *model.Driver {
	return &model.Driver{
		ID:        76561198000000001,
		FirstName: "Ann",
		LastName:  "Able",
		ShortName: "ABL",
	}
}

// CreateSampleSession stores a session with one car driven by SampleDriver.
// Each entry of laps becomes one valid lap with the given splits.
func CreateSampleSession(
	pool *pgxpool.Pool,
	ts time.Time,
	laps ...[]time.Duration,
) *model.Session {
	s := &model.Session{SessionKey: SampleSessionKey(), Timestamp: ts}
	err := pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		ctx := context.Background()
		if err := sessionrepos.Create(ctx, tx, s); err != nil {
			return err
		}
		c := &model.Car{SessionID: s.ID, RaceNumber: 7, Model: 20, CarGroup: "GT3"}
		if err := carrepos.Upsert(ctx, tx, c); err != nil {
			return err
		}
		d := SampleDriver()
		if err := driverrepos.Upsert(ctx, tx, d); err != nil {
			return err
		}
		for _, splits := range laps {
			var total time.Duration
			for _, sp := range splits {
				total += sp
			}
			l := &model.Lap{
				DriverID: d.ID, SessionID: s.ID, CarID: c.ID,
				Time: total, Valid: true, Splits: splits,
			}
			if err := laprepos.Create(ctx, tx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("CreateSampleSession: %v\n", err)
	}
	return s
}
