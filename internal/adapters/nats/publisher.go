package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/aliaga/companymap/internal/core/domain"
)

// Subjects for company change events. The WebSocket relay subscribes to
// "companies.>" and forwards everything to map clients.
const (
	SubjectCreated = "companies.created"
	SubjectUpdated = "companies.updated"
	SubjectDeleted = "companies.deleted"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream, and ensures the company
// event stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      "COMPANY_EVENTS",
		Subjects:  []string{"companies.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		conn.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishCreated emits a created event carrying the full record.
func (p *Publisher) PublishCreated(ctx context.Context, c *domain.Company) error {
	return p.publish(ctx, SubjectCreated, domain.CompanyEvent{Action: "created", ID: c.ID, Company: c})
}

// PublishUpdated emits an updated event carrying the full record.
func (p *Publisher) PublishUpdated(ctx context.Context, c *domain.Company) error {
	return p.publish(ctx, SubjectUpdated, domain.CompanyEvent{Action: "updated", ID: c.ID, Company: c})
}

// PublishDeleted emits a deleted event carrying only the id.
func (p *Publisher) PublishDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, SubjectDeleted, domain.CompanyEvent{Action: "deleted", ID: id})
}

func (p *Publisher) publish(ctx context.Context, subject string, event domain.CompanyEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = p.js.Publish(subject, data, nats.Context(ctx))
	return err
}

// Close drains the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn opens a plain NATS connection, used by the WebSocket relay.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
