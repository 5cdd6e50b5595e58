package leaderboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/repository"
	"github.com/mpapenbr/accstats/pkg/repository/standings"
	"github.com/mpapenbr/accstats/pkg/utils/cache"
	"github.com/mpapenbr/accstats/pkg/utils/cache/loadercache"
)

var ErrDriverNotFound = errors.New("driver not found")

const keySep = "\x00"

type (
	// Service provides computed leaderboards. Results are reused until they
	// expire, writes do not invalidate them.
	Service struct {
		db      repository.Querier
		ttl     time.Duration
		l       *log.Logger
		tracer  trace.Tracer
		boards  cache.Cache[string, Leaderboard]
		drivers cache.Cache[int64, DriverView]
	}
	Option func(*Service)
)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.l = l
	}
}

func NewService(db repository.Querier, opts ...Option) *Service {
	ret := &Service{
		db:     db,
		ttl:    time.Minute,
		l:      log.Default().Named("leaderboard"),
		tracer: otel.Tracer("accstats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.boards = loadercache.New(
		loadercache.WithExpiration[string, Leaderboard](ret.ttl),
		loadercache.WithLoader(ret.loadLeaderboard),
		loadercache.WithLogger[string, Leaderboard](ret.l.Named("cache")),
	)
	ret.drivers = loadercache.New(
		loadercache.WithExpiration[int64, DriverView](ret.ttl),
		loadercache.WithLoader(ret.loadDriver),
		loadercache.WithLogger[int64, DriverView](ret.l.Named("cache")),
	)
	return ret
}

// Leaderboard returns the leaderboard for tracks, all tracks if none are given
func (s *Service) Leaderboard(ctx context.Context, tracks []string) (*Leaderboard, error) {
	return s.boards.Get(ctx, tracksKey(tracks))
}

// Driver returns the view of a driver. Returns ErrDriverNotFound if the
// driver has no laps.
func (s *Service) Driver(ctx context.Context, driverID int64) (*DriverView, error) {
	return s.drivers.Get(ctx, driverID)
}

// Tracks returns the names of all tracks, most recently driven first
func (s *Service) Tracks(ctx context.Context) ([]string, error) {
	return standings.LoadTracks(ctx, s.db)
}

func (s *Service) loadLeaderboard(ctx context.Context, key string) (*Leaderboard, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.compute")
	defer span.End()
	var tracks []string
	if key != "" {
		tracks = strings.Split(key, keySep)
	}
	span.SetAttributes(attribute.StringSlice("tracks", tracks))
	recs, err := standings.LoadLapRecords(ctx, s.db, tracks)
	if err != nil {
		return nil, err
	}
	ret := Compute(recs)
	s.l.Debug("leaderboard computed",
		log.Int("records", len(recs)), log.Int("tracks", len(ret.Tracks)))
	return ret, nil
}

func (s *Service) loadDriver(ctx context.Context, driverID int64) (*DriverView, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.driver",
		trace.WithAttributes(attribute.Int64("driver", driverID)))
	defer span.End()
	tracks, err := standings.LoadDriverTracks(ctx, s.db, driverID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrDriverNotFound
	}
	recs, err := standings.LoadLapRecords(ctx, s.db, tracks)
	if err != nil {
		return nil, err
	}
	ret := ComputeDriver(driverID, recs)
	if ret == nil {
		return nil, ErrDriverNotFound
	}
	return ret, nil
}

func tracksKey(tracks []string) string {
	t := lo.Uniq(lo.Compact(tracks))
	slices.Sort(t)
	return strings.Join(t, keySep)
}
