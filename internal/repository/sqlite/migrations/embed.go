package migrations

import "embed"

// FS holds the ordered .sql migration files applied at open time.
//
//go:embed *.sql
var FS embed.FS
