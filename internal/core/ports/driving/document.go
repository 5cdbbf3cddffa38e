package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// DocumentService attaches documents to processes and meetings.
type DocumentService interface {
	// Attach validates and stores a document against a process, then
	// applies any side-effect rule for its type.
	Attach(ctx context.Context, actor domain.Actor, req domain.AttachRequest) (*domain.Document, error)

	// AttachAta stores minutes and links them to a concluded meeting.
	AttachAta(ctx context.Context, actor domain.Actor, meetingID string, upload domain.AtaUpload) (*domain.Meeting, error)

	// Get retrieves document metadata visible to the actor.
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Document, error)

	// ListByProcess returns the documents of a process visible to the actor.
	ListByProcess(ctx context.Context, actor domain.Actor, processID string) ([]domain.Document, error)

	// Content returns the payload of a document visible to the actor.
	Content(ctx context.Context, actor domain.Actor, id string) ([]byte, error)
}
