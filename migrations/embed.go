// Package migrations embeds the request history schema into the binary.
//
// The files are passed to database.DB.Migrate, so knxlink needs nothing but
// its executable to create or upgrade a history database.
package migrations

import "embed"

// FS holds every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
