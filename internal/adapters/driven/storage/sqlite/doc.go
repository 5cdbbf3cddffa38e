// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Store implements driven.Transactor; every
// repository it hands out is bound to one database transaction:
//
//   - ProcessStore: processes and their yearly sequence counters
//   - MeetingStore: committee meetings
//   - DocumentStore: document metadata (payloads live in a BlobStore)
//   - PartyStore: parties and their attachment to processes
//   - ParecerStore: closing opinions
//   - CommitteeStore: imported committee rosters
//
// Store.AuditLog returns a driven.AuditLog over the same database.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Uniqueness, referential integrity and the archived/closed pairing are enforced
// by table constraints and surface as domain errors.
//
// # Data Location
//
// By default, the database is stored at ~/.juris/data/metadata.db
//
// # Thread Safety
//
// All operations are thread-safe. Transactions begin IMMEDIATE so concurrent
// writers serialize on SQLite's write lock instead of failing mid-transaction.
package sqlite
