// Package appfs embeds the files the app ships with: database migrations & email templates.
package appfs

import "embed"

//go:embed migrations templates
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	EmailTemplatesDir = "templates/email"
)
