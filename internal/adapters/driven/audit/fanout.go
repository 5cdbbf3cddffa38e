package audit

import (
	"context"
	"errors"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure Fanout implements the interface.
var _ driven.AuditSink = Fanout(nil)

// Fanout delivers each event to every sink. One failing sink does not stop
// delivery to the others; their errors are joined.
type Fanout []driven.AuditSink

// Emit sends event to all sinks.
func (f Fanout) Emit(ctx context.Context, event domain.AuditEvent) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
