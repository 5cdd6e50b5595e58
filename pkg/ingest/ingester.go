// Package ingest stores result files. Each file is processed in its own
// transaction, files are processed strictly one after another.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/normalize"
	"github.com/mpapenbr/accstats/pkg/notify"
	"github.com/mpapenbr/accstats/pkg/repository"
	carrepos "github.com/mpapenbr/accstats/pkg/repository/car"
	driverrepos "github.com/mpapenbr/accstats/pkg/repository/driver"
	knownfilerepos "github.com/mpapenbr/accstats/pkg/repository/knownfile"
	laprepos "github.com/mpapenbr/accstats/pkg/repository/lap"
	sessionrepos "github.com/mpapenbr/accstats/pkg/repository/session"
	"github.com/mpapenbr/accstats/pkg/resultfile"
)

type Outcome int

const (
	OutcomeIgnored Outcome = iota // not a result file
	OutcomeKnown                  // processed before
	OutcomeSession
	OutcomeEntryList
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKnown:
		return "known"
	case OutcomeSession:
		return "session"
	case OutcomeEntryList:
		return "entrylist"
	default:
		return "ignored"
	}
}

// DB is what the ingester needs from a pool
type DB interface {
	repository.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type (
	Ingester struct {
		db       DB
		loc      *time.Location
		resolver *Resolver
		notifier notify.Notifier
		l        *log.Logger
		tracer   trace.Tracer
		files    metric.Int64Counter
		failures metric.Int64Counter
	}
	Option func(*Ingester)
)

func WithLocation(loc *time.Location) Option {
	return func(i *Ingester) {
		i.loc = loc
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(i *Ingester) {
		i.notifier = n
	}
}

func WithLogger(l *log.Logger) Option {
	return func(i *Ingester) {
		i.l = l
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(i *Ingester) {
		i.tracer = tracer
	}
}

func NewIngester(db DB, opts ...Option) (*Ingester, error) {
	ret := &Ingester{
		db:       db,
		loc:      time.Local,
		notifier: notify.Noop(),
		l:        log.Default().Named("ingest"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("accstats")
	}
	ret.resolver = NewResolver(ret.l.Named("supersession"))

	meter := otel.Meter("accstats-ingest")
	var err error
	if ret.files, err = meter.Int64Counter("accstats.ingest.files",
		metric.WithDescription("number of handled files")); err != nil {
		return nil, err
	}
	if ret.failures, err = meter.Int64Counter("accstats.ingest.failures",
		metric.WithDescription("number of files which could not be ingested")); err != nil {
		return nil, err
	}
	return ret, nil
}

// HandleFile ingests a single file. Files with names not matching a result
// file are ignored, files processed before are skipped without reading them.
// On error nothing of the file is stored and the file is not marked as known.
func (i *Ingester) HandleFile(ctx context.Context, path string) (Outcome, error) {
	ctx, span := i.tracer.Start(ctx, "ingest.file",
		trace.WithAttributes(attribute.String("file", path)))
	defer span.End()

	outcome, err := i.handleFile(ctx, path)
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	i.files.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		i.failures.Add(ctx, 1)
	}
	return outcome, err
}

func (i *Ingester) handleFile(ctx context.Context, path string) (Outcome, error) {
	kind := resultfile.Classify(path)
	if kind == resultfile.KindUnknown {
		i.l.Debug("ignoring file", log.String("file", path))
		return OutcomeIgnored, nil
	}
	key := fileKey(path)
	known, err := knownfilerepos.Exists(ctx, i.db, key)
	if err != nil {
		return OutcomeIgnored, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if known {
		i.l.Debug("file already processed", log.String("file", key))
		return OutcomeKnown, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return OutcomeIgnored, err
	}
	canonical, err := normalize.Normalize(raw)
	if err != nil {
		return OutcomeIgnored, err
	}

	switch kind {
	case resultfile.KindEntryList:
		list, err := resultfile.ParseEntryList([]byte(canonical))
		if err != nil {
			return OutcomeIgnored, err
		}
		if err := i.storeEntryList(ctx, key, list); err != nil {
			return OutcomeIgnored, err
		}
		i.l.Info("entry list processed",
			log.String("file", key), log.Int("drivers", len(list.Drivers)))
		return OutcomeEntryList, nil
	default:
		sf, err := resultfile.ParseSession(filepath.Base(path), []byte(canonical), i.loc)
		if err != nil {
			return OutcomeIgnored, err
		}
		superseded, err := i.storeSession(ctx, key, sf)
		if err != nil {
			return OutcomeIgnored, err
		}
		i.l.Info("session processed",
			log.String("file", key),
			log.String("track", sf.Session.Track),
			log.String("type", string(sf.Session.Type)),
			log.Int("laps", len(sf.Laps)),
			log.Int("superseded", superseded))
		i.publish(ctx, key, sf, superseded)
		return OutcomeSession, nil
	}
}

//nolint:whitespace // can't make both the linter and editor happy :(
func (i *Ingester) storeEntryList(
	ctx context.Context, key string, list *resultfile.EntryList,
) error {
	err := pgx.BeginFunc(ctx, i.db, func(tx pgx.Tx) error {
		for idx := range list.Drivers {
			if err := driverrepos.UpsertRoster(ctx, tx, &list.Drivers[idx]); err != nil {
				return err
			}
		}
		return knownfilerepos.Create(ctx, tx, key)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// storeSession persists the session and returns the number of superseded sessions
//
//nolint:whitespace,funlen,cyclop // can't make both the linter and editor happy :(
func (i *Ingester) storeSession(
	ctx context.Context, key string, sf *resultfile.SessionFile,
) (int, error) {
	superseded := 0
	err := pgx.BeginFunc(ctx, i.db, func(tx pgx.Tx) error {
		var err error
		superseded, err = i.resolver.Resolve(ctx, tx,
			sf.Session.SessionKey, sf.Session.Timestamp, sf.Fingerprints())
		if err != nil {
			return err
		}
		s := sf.Session
		if err = sessionrepos.Create(ctx, tx, &s); err != nil {
			return err
		}

		carIDs := make(map[int]int64, len(sf.Cars))
		carDrivers := make(map[int][]model.Driver, len(sf.Cars))
		for idx := range sf.Cars {
			entry := &sf.Cars[idx]
			c := entry.Car
			c.SessionID = s.ID
			if err = carrepos.Upsert(ctx, tx, &c); err != nil {
				return err
			}
			carIDs[entry.CarIdx] = c.ID
			carDrivers[entry.CarIdx] = entry.Drivers
			for d := range entry.Drivers {
				if err = driverrepos.Upsert(ctx, tx, &entry.Drivers[d]); err != nil {
					return err
				}
			}
		}

		for idx := range sf.Laps {
			entry := &sf.Laps[idx]
			carID, ok := carIDs[entry.CarIdx]
			if !ok {
				return fmt.Errorf("%w: lap %d refers to unknown car %d",
					ErrMissingReference, idx, entry.CarIdx)
			}
			drivers := carDrivers[entry.CarIdx]
			if entry.DriverIndex < 0 || entry.DriverIndex >= len(drivers) {
				return fmt.Errorf("%w: lap %d refers to driver index %d of car %d",
					ErrMissingReference, idx, entry.DriverIndex, entry.CarIdx)
			}
			l := &model.Lap{
				DriverID:  drivers[entry.DriverIndex].ID,
				SessionID: s.ID,
				CarID:     carID,
				Time:      entry.Time,
				Valid:     entry.Valid,
				Splits:    entry.Splits,
			}
			if err = laprepos.Create(ctx, tx, l); err != nil {
				return err
			}
		}
		sf.Session.ID = s.ID
		return knownfilerepos.Create(ctx, tx, key)
	})
	if err != nil {
		if errors.Is(err, ErrMissingReference) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return superseded, nil
}

//nolint:whitespace // can't make both the linter and editor happy :(
func (i *Ingester) publish(
	ctx context.Context, key string, sf *resultfile.SessionFile, superseded int,
) {
	err := i.notifier.Publish(ctx, &notify.Notification{
		File:       key,
		Track:      sf.Session.Track,
		Type:       string(sf.Session.Type),
		Server:     sf.Session.ServerName,
		Timestamp:  sf.Session.Timestamp,
		Superseded: superseded,
	})
	if err != nil {
		i.l.Warn("could not publish notification",
			log.String("file", key), log.ErrorField(err))
	}
}

// fileKey is the path stored as known file
func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
