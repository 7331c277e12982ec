// Package schema embeds the SQL migrations applied at startup.
package schema

import "embed"

// Dir is the directory within Migrations holding the migration files.
const Dir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
