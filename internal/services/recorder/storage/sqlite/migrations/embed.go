package migrations

import "embed"

// FS contains embedded SQLite migrations for recorder storage.
//
//go:embed *.sql
var FS embed.FS
