// Package mcp provides an MCP (Model Context Protocol) server adapter for Juris.
// It lets AI assistants register processes, schedule committee meetings and
// record the parties involved, acting on behalf of a configured actor.
package mcp

import "errors"

// ErrMissingProcessService is returned when the process service is not provided.
var ErrMissingProcessService = errors.New("mcp: process service is required")

// ErrMissingActor is returned when no default actor is configured.
var ErrMissingActor = errors.New("mcp: default actor is required")
