// Package sqlite persists screenshot and category metadata in a single
// SQLite database, implementing ScreenshotStore, CategoryStore and
// StoreMaintenance over one shared connection.
//
// The driver is modernc.org/sqlite, pure Go, so the binary
// cross-compiles without CGO. The database lives at
// ~/.clipsort/data/metadata.db unless a data directory is given.
//
// Schema changes ship as versioned .up.sql/.down.sql pairs under
// migrations/, applied in order on open and tracked in the
// schema_migrations table.
//
// Concurrent pipeline runs hit the store simultaneously; WAL mode plus
// a busy timeout in the DSN makes that safe without locking in Go.
package sqlite
