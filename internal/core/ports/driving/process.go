package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// ProcessService manages the process lifecycle.
type ProcessService interface {
	// Register opens a new process owned by the actor.
	Register(ctx context.Context, actor domain.Actor, subject string, processType domain.ProcessType) (*domain.Process, error)

	// Edit applies the fields present in edit. Setting State to archived
	// closes the process without a parecer.
	Edit(ctx context.Context, actor domain.Actor, id string, edit domain.ProcessEdit) (*domain.Process, error)

	// Archive closes the process and records its parecer atomically.
	Archive(ctx context.Context, actor domain.Actor, id string, req domain.ArchiveRequest) (*domain.Process, error)

	// Get retrieves a process visible to the actor.
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Process, error)

	// List returns one page of the processes visible to the actor.
	List(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.ProcessPage, error)

	// Parecer retrieves the closing opinion of an archived process.
	Parecer(ctx context.Context, actor domain.Actor, processID string) (*domain.Parecer, error)
}
