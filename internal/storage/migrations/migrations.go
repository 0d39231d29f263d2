// Package migrations embeds the goose SQL migrations for each supported
// driver, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
