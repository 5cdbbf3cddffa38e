package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure NATSPublisher implements the interface.
var _ driven.AuditSink = (*NATSPublisher)(nil)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "juris.audit"

// publisher is the part of *nats.Conn the sink needs.
type publisher interface {
	Publish(subject string, data []byte) error
}

// eventMessage is the wire form of an audit event.
type eventMessage struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	ActorID   string            `json:"actor_id"`
	Action    string            `json:"action"`
	Entity    string            `json:"entity"`
	EntityID  string            `json:"entity_id"`
	Details   map[string]string `json:"details,omitempty"`
}

// NATSPublisher publishes audit events to NATS core subjects.
type NATSPublisher struct {
	conn   publisher
	closer func()
	prefix string
}

// NewNATSPublisher connects to url and publishes under prefix.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("juris"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	p := newNATSPublisher(conn, prefix)
	p.closer = func() {
		if err := conn.Drain(); err != nil {
			conn.Close()
		}
	}
	return p, nil
}

func newNATSPublisher(conn publisher, prefix string) *NATSPublisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Emit publishes event on its subject.
func (p *NATSPublisher) Emit(ctx context.Context, event domain.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(eventMessage{
		ID:        event.ID,
		Timestamp: event.Timestamp.UTC(),
		ActorID:   event.ActorID,
		Action:    string(event.Action),
		Entity:    string(event.Entity),
		EntityID:  event.EntityID,
		Details:   event.Details,
	})
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}
	subject := p.Subject(event)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}

// Subject returns the subject an event is published on.
func (p *NATSPublisher) Subject(event domain.AuditEvent) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, event.Entity, strings.ToLower(string(event.Action)))
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
