// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Transactor: runs a unit of work atomically over the aggregate stores
//   - ProcessStore, MeetingStore, DocumentStore, PartyStore, ParecerStore,
//     CommitteeStore: one repository per aggregate, reachable only through
//     Repositories inside a transaction
//   - BlobStore: opaque storage for PDF payloads
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AuditSink: receives one event per successful mutation. Without it,
//     mutations still succeed but nothing is recorded.
//   - AuditLog: queryable audit history. Without it, audit listing is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
