package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/dtroode/storefront-server/internal/model"
)

// Conn is the subset of *nats.Conn used by the publisher.
type Conn interface {
	Publish(subj string, data []byte) error
}

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher sends domain events as JSON messages on "<prefix>.<event type>".
type Publisher struct {
	conn   Conn
	prefix string
	now    func() time.Time
}

// message is the wire format of a published event.
type message struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewPublisher(conn Conn, prefix string) *Publisher {
	return &Publisher{
		conn:   conn,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Connect opens a named connection to the NATS server at url.
func Connect(url string) (*natsgo.Conn, error) {
	conn, err := natsgo.Connect(url,
		natsgo.Name("storefront-server"),
		natsgo.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return conn, nil
}

func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(message{
		Type:       event.Type,
		OccurredAt: p.now(),
		Payload:    event.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	if err := p.conn.Publish(p.subject(event.Type), data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

func (p *Publisher) subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}
