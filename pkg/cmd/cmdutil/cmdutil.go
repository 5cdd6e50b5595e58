package cmdutil

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgx-contrib/pgxtrace"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/config"
	"github.com/mpapenbr/accstats/pkg/db/postgres"
	"github.com/mpapenbr/accstats/pkg/utils"
)

// Env holds what the commands need after the common setup
type Env struct {
	Logger    *log.Logger
	SQLLogger *log.Logger
	Location  *time.Location
	Pool      *pgxpool.Pool
	telemetry *config.Telemetry
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// ParseDuration returns defaultVal if s is not a valid duration
func ParseDuration(s string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Warn("Invalid duration value. Using default",
			log.String("value", s),
			log.Duration("default", defaultVal),
			log.ErrorField(err))
		return defaultVal
	}
	return d
}

// SetupLogger creates the application and sql logger and installs the
// application logger as default.
func SetupLogger() (logger, sqlLogger *log.Logger, err error) {
	filter, err := log.WithFilterRules(config.LogFilter)
	if err != nil {
		return nil, nil, err
	}
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)
	return logger, sqlLogger.Named("sql"), nil
}

// LoadLocation resolves the time zone of result file names. Empty means local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// WaitForDB blocks until the database accepts tcp connections
func WaitForDB(ctx context.Context) error {
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if postgresAddr == "" {
		return nil
	}
	timeout := ParseDuration(config.WaitForServices, 60*time.Second)
	log.Debug("Waiting for database", log.String("addr", postgresAddr))
	return utils.WaitForTCP(ctx, postgresAddr, timeout)
}

// Setup performs logger, telemetry and database setup.
// Callers must invoke Close when done.
func Setup(ctx context.Context) (*Env, error) {
	logger, sqlLogger, err := SetupLogger()
	if err != nil {
		return nil, err
	}
	loc, err := LoadLocation(config.TimeZone)
	if err != nil {
		return nil, err
	}
	env := &Env{Logger: logger, SQLLogger: sqlLogger, Location: loc}

	pgTracer := pgxtrace.CompositeQueryTracer{
		postgres.NewMyTracer(sqlLogger, log.DebugLevel),
	}
	if config.EnableTelemetry {
		logger.Info("Enabling telemetry")
		if env.telemetry, err = config.SetupTelemetry(ctx); err == nil {
			pgTracer = append(pgTracer, postgres.NewOtlpTracer())
		} else {
			logger.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			logger.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	if err = WaitForDB(ctx); err != nil {
		env.Close(ctx)
		return nil, err
	}
	env.Pool, err = postgres.InitWithURL(ctx, config.DB, postgres.WithTracer(pgTracer))
	if err != nil {
		env.Close(ctx)
		return nil, err
	}
	return env, nil
}

func (e *Env) Close(ctx context.Context) {
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.telemetry != nil {
		if err := e.telemetry.Shutdown(ctx); err != nil {
			e.Logger.Warn("Could not shutdown telemetry", log.ErrorField(err))
		}
	}
	//nolint:errcheck // stderr sync fails on some terminals
	e.Logger.Sync()
}
