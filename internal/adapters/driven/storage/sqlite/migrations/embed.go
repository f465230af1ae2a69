// Package migrations carries the store's schema as embedded SQL files.
package migrations

import "embed"

// FS holds every .up.sql/.down.sql pair, compiled into the binary so
// the store needs no files on disk.
//
//go:embed *.sql
var FS embed.FS
