// Package migrations embeds the goose migration scripts for the local
// client database. Migrations are strictly additive: upgrades may create
// collections and indexes but never drop or rewrite existing data.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
