// Package file stores juris settings in ~/.juris/config.toml.
//
// Dotted keys such as "http.rate_limit" map to TOML tables, and the file is
// re-read when it changes on disk so a running server sees edits made with
// 'juris settings set' or by hand.
package file
