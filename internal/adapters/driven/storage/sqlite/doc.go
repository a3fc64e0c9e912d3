// Package sqlite provides a SQLite-based implementation of driven.LocalStorage.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Values live in a single key/value table, so the recent
// search list can be shared with other tools that read the database.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.chainsearch/data/storage.db
package sqlite
