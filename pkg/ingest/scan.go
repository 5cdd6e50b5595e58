package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mpapenbr/accstats/log"
)

type Stats struct {
	Sessions    int
	EntryLists  int
	Known       int
	Ignored     int
	Failed      int
	FailedFiles []string
}

func (s *Stats) add(path string, o Outcome, err error) {
	if err != nil {
		s.Failed++
		s.FailedFiles = append(s.FailedFiles, path)
		return
	}
	switch o {
	case OutcomeSession:
		s.Sessions++
	case OutcomeEntryList:
		s.EntryLists++
	case OutcomeKnown:
		s.Known++
	default:
		s.Ignored++
	}
}

// ScanDir handles all files of dir in ascending name order. A failing file is
// logged and skipped, it will be retried on the next scan. Only errors reading
// the directory or a cancelled context stop the scan.
func (i *Ingester) ScanDir(ctx context.Context, dir string) (Stats, error) {
	stats := Stats{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, err
	}
	l := i.l.With(log.String("run", uuid.NewString()))
	l.Info("scanning directory", log.String("dir", dir), log.Int("entries", len(entries)))
	// os.ReadDir returns the entries sorted by filename
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		outcome, err := i.HandleFile(ctx, path)
		if err != nil {
			l.Warn("could not ingest file", log.String("file", path), log.ErrorField(err))
		}
		stats.add(path, outcome, err)
	}
	l.Info("scan done",
		log.Int("sessions", stats.Sessions),
		log.Int("entrylists", stats.EntryLists),
		log.Int("known", stats.Known),
		log.Int("failed", stats.Failed))
	return stats, nil
}
