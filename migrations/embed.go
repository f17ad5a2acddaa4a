// Package migrations embeds the SQL schema for the database-backed blob stores.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dir returns the migrations of one dialect directory ("sqlite" or "postgres").
func Dir(name string) (fs.FS, error) {
	return fs.Sub(FS, name)
}
