package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"github.com/nats-io/nats.go"
)

type natsConn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NatsPublisher forwards committed events to a NATS server. Delivery is best
// effort: publish failures are logged and never reach the caller.
type NatsPublisher struct {
	conn   natsConn
	prefix string
}

var _ database.EventPublisher = (*NatsPublisher)(nil)

func NewNatsPublisher(url, prefix string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("vibetodo"),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, err
	}
	slog.Info("nats publisher connected", "url", nc.ConnectedUrl(), "prefix", prefix)
	return &NatsPublisher{conn: nc, prefix: prefix}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, events []models.Event) {
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			slog.Error("failed to encode event", "event", ev.Event, "error", err)
			continue
		}
		subject := Subject(p.prefix, ev.Event)
		if err := p.conn.Publish(subject, data); err != nil {
			slog.Error("failed to publish event", "subject", subject, "error", err)
			continue
		}
		slog.Debug("event published", "subject", subject, "entity_id", ev.EntityID)
	}
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("failed to drain nats connection", "error", err)
	}
}
