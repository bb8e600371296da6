// Package migrations embeds the SQL schema migrations for the index store.
package migrations

import "embed"

// FS holds every *.sql migration, compiled into the binary.
//
//go:embed *.sql
var FS embed.FS
