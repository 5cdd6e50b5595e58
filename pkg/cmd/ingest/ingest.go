package ingest

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/cmd/cmdutil"
	"github.com/mpapenbr/accstats/pkg/config"
	"github.com/mpapenbr/accstats/pkg/ingest"
	"github.com/mpapenbr/accstats/pkg/notify"
	"github.com/mpapenbr/accstats/pkg/watch"
)

func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "imports the result files of the results directory",
		Long: `Imports all result files of the results directory. Files already imported
are skipped. With --watch new or changed files are imported as they appear.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startIngest(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&config.Watch,
		"watch",
		"w",
		false,
		"keep watching the results directory after the initial scan")
	cmd.Flags().StringVar(&config.Debounce,
		"debounce",
		"1s",
		"quiet period before a changed file is imported")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"",
		"if set, a notification is published for each imported session")
	cmd.Flags().StringVar(&config.NatsSubject,
		"nats-subject",
		"accstats.ingest",
		"subject for ingest notifications")
	return cmd
}

//nolint:funlen // by design
func startIngest(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := cmdutil.Setup(ctx)
	if err != nil {
		log.Error("setup failed", log.ErrorField(err))
		return err
	}
	defer env.Close(context.Background())

	notifier := notify.Noop()
	if config.NatsURL != "" {
		conn, err := notify.Connect(config.NatsURL)
		if err != nil {
			log.Error("could not connect to nats", log.ErrorField(err))
			return err
		}
		notifier = notify.NewNatsNotifier(conn,
			notify.WithSubject(config.NatsSubject),
			notify.WithLogger(env.Logger.Named("notify")))
	}
	defer notifier.Close()

	ing, err := ingest.NewIngester(env.Pool,
		ingest.WithLocation(env.Location),
		ingest.WithNotifier(notifier),
		ingest.WithLogger(env.Logger.Named("ingest")))
	if err != nil {
		return err
	}

	log.Info("Scanning results directory", log.String("dir", config.ResultsDir))
	stats, err := ing.ScanDir(ctx, config.ResultsDir)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("scan failed", log.ErrorField(err))
		return err
	}
	log.Info("Scan finished",
		log.Int("sessions", stats.Sessions),
		log.Int("entrylists", stats.EntryLists),
		log.Int("known", stats.Known),
		log.Int("ignored", stats.Ignored),
		log.Int("failed", stats.Failed),
		log.Strings("failedFiles", stats.FailedFiles))

	if !config.Watch || ctx.Err() != nil {
		return nil
	}

	w := watch.New(
		watch.WithDebounce(cmdutil.ParseDuration(config.Debounce, time.Second)),
		watch.WithLogger(env.Logger.Named("watch")))
	log.Info("Watching results directory", log.String("dir", config.ResultsDir))
	err = w.Run(ctx, config.ResultsDir, func(ctx context.Context, path string) {
		outcome, err := ing.HandleFile(ctx, path)
		if err != nil {
			log.Warn("could not import file",
				log.String("file", path), log.ErrorField(err))
			return
		}
		log.Info("file handled",
			log.String("file", path), log.Stringer("outcome", outcome))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Watcher terminated")
	return nil
}
