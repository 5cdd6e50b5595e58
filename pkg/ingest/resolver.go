package ingest

import (
	"context"
	"time"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/model"
	"github.com/mpapenbr/accstats/pkg/repository"
	sessionrepos "github.com/mpapenbr/accstats/pkg/repository/session"
)

// Resolver removes stored generations of a session which are contained in an
// incoming one. The server rewrites a session file while it is running, each
// version holds all laps of the previous one.
type Resolver struct {
	l *log.Logger
}

func NewResolver(l *log.Logger) *Resolver {
	return &Resolver{l: l}
}

// Resolve walks the stored sessions with the same key backwards in time
// starting before ts. Each session whose fingerprints are a subset of
// incoming is deleted. The walk stops at the first session which is not a
// subset or when no older session exists. Returns the number of deleted sessions.
//
//nolint:whitespace // can't make both the linter and editor happy :(
func (r *Resolver) Resolve(
	ctx context.Context,
	conn repository.Querier,
	key model.SessionKey,
	ts time.Time,
	incoming model.FingerprintSet,
) (int, error) {
	deleted := 0
	for {
		older, err := sessionrepos.FindPredecessor(ctx, conn, key, ts)
		if err != nil {
			return deleted, err
		}
		if older == nil {
			return deleted, nil
		}
		fps, err := sessionrepos.LoadFingerprints(ctx, conn, older.ID)
		if err != nil {
			return deleted, err
		}
		if !fps.SubsetOf(incoming) {
			r.l.Debug("older session kept",
				log.Int64("session", older.ID),
				log.Time("timestamp", older.Timestamp))
			return deleted, nil
		}
		if _, err := sessionrepos.DeleteByID(ctx, conn, older.ID); err != nil {
			return deleted, err
		}
		r.l.Info("superseded session deleted",
			log.Int64("session", older.ID),
			log.String("track", key.Track),
			log.Time("timestamp", older.Timestamp))
		deleted++
	}
}
