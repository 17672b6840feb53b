package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary, so a
// deployment never depends on a migrations directory existing on disk.
//
//go:embed *.sql
var Files embed.FS
