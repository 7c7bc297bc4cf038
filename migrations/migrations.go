// Package migrations embeds the catalog schema migrations.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
