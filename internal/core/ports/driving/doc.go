// Package driving defines interfaces that external actors (CLI, REST, MCP)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
// Every mutating operation takes the authenticated domain.Actor supplied by
// the Auth collaborator. Implementations live in internal/core/services.
package driving
