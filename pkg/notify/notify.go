// Package notify publishes a message for each ingested session.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mpapenbr/accstats/log"
)

type (
	// Notification describes a committed session ingestion
	//
	//nolint:tagliatelle // json is that way
	Notification struct {
		File       string    `json:"file"`
		Track      string    `json:"track"`
		Type       string    `json:"type"`
		Server     string    `json:"server"`
		Timestamp  time.Time `json:"timestamp"`
		Superseded int       `json:"superseded"`
	}
	Notifier interface {
		Publish(ctx context.Context, n *Notification) error
		Close()
	}
)

type noop struct{}

// Noop discards all notifications
func Noop() Notifier { return noop{} }

func (noop) Publish(context.Context, *Notification) error { return nil }
func (noop) Close()                                       {}

type (
	NatsNotifier struct {
		conn    *nats.Conn
		subject string
		l       *log.Logger
	}
	Option func(*NatsNotifier)
)

func WithSubject(subject string) Option {
	return func(n *NatsNotifier) {
		n.subject = subject
	}
}

func WithLogger(l *log.Logger) Option {
	return func(n *NatsNotifier) {
		n.l = l
	}
}

func NewNatsNotifier(conn *nats.Conn, opts ...Option) *NatsNotifier {
	ret := &NatsNotifier{
		conn:    conn,
		subject: "accstats.ingest",
		l:       log.Default().Named("notify"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Connect opens a nats connection to url. Reconnects are handled by the client.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("accstats"),
		nats.MaxReconnects(-1),
	)
}

func (n *NatsNotifier) Publish(_ context.Context, msg *Notification) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	n.l.Debug("publishing", log.String("subject", n.subject), log.String("file", msg.File))
	return n.conn.Publish(n.subject, data)
}

// Close flushes pending messages and closes the connection
func (n *NatsNotifier) Close() {
	if err := n.conn.Drain(); err != nil {
		n.l.Warn("could not drain nats connection", log.ErrorField(err))
	}
}
