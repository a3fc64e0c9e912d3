// Package migrations holds the numbered schema scripts for the local
// key/value database. Files are named NNN_name.up.sql / NNN_name.down.sql.
package migrations

import "embed"

// FS holds the scripts, read by the store at open time.
//
//go:embed *.sql
var FS embed.FS
