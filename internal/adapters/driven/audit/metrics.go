package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure Instrumented implements the interface.
var _ driven.AuditSink = (*Instrumented)(nil)

// Instrumented counts the events passing through a sink.
type Instrumented struct {
	next   driven.AuditSink
	events *prometheus.CounterVec
}

// NewInstrumented wraps next and registers its counter with reg.
func NewInstrumented(next driven.AuditSink, reg prometheus.Registerer) (*Instrumented, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "juris",
		Subsystem: "audit",
		Name:      "events_total",
		Help:      "Audit events emitted, by entity, action and outcome.",
	}, []string{"entity", "action", "outcome"})
	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &Instrumented{next: next, events: events}, nil
}

// Emit forwards event and records the outcome.
func (s *Instrumented) Emit(ctx context.Context, event domain.AuditEvent) error {
	err := s.next.Emit(ctx, event)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.events.WithLabelValues(string(event.Entity), string(event.Action), outcome).Inc()
	return err
}
