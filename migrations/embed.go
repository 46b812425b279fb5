// Package migrations embeds the SQL migration files so the binary can
// bootstrap its own schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
