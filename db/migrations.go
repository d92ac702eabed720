package db

import "embed"

// Migrations holds the SQL migrations compiled into builds tagged
// embed_migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
