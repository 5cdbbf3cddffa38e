// Package migrations holds the schema for the SQLite store as numbered
// NNN_name.up.sql / NNN_name.down.sql pairs.
package migrations

import "embed"

// FS is read by the store's migrate step in file name order.
//
//go:embed *.sql
var FS embed.FS
