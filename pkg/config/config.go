package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                 string // connection string for the database
	ResultsDir         string // directory containing the result files
	TimeZone           string // time zone of the timestamps in result filenames
	Debounce           string // debounce window for file change events
	CacheTTL           string // how long computed leaderboards are reused
	Watch              bool   // keep watching the results directory after the initial scan
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogFilter          string // zapfilter rules, e.g. "debug:ingest.* info:*"
	MigrationSourceURL string // location of migration files
	EnableTelemetry    bool   // enable telemetry
	NatsURL            string // if set, ingested sessions are published to nats
	NatsSubject        string // subject for ingest notifications
	Tracks             []string
	DriverID           string // driver id for the driver view (S123 or 123)
)
