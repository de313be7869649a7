// Package migrations embeds the PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds the golang-migrate up/down SQL files.
//
//go:embed *.sql
var FS embed.FS
