// Package db carries the embedded SQL migration sources.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
