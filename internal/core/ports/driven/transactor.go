package driven

import "context"

// Transactor runs units of work atomically.
//
// Every write performed through repos inside fn is committed together when
// fn returns nil and discarded entirely when fn returns an error. Services
// must not keep repos beyond fn.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Repositories exposes the per-aggregate stores bound to one transaction.
type Repositories interface {
	Processes() ProcessStore
	Meetings() MeetingStore
	Documents() DocumentStore
	Parties() PartyStore
	Pareceres() ParecerStore
	Committees() CommitteeStore
}
