package ledger

import "embed"

// migrations contains the embedded goose SQL migration files.
//
//go:embed migrations/*.sql
var migrations embed.FS
