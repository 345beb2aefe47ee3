package migrations

import "embed"

// FS содержит SQL миграции, применяемые при старте сервиса
//
//go:embed *.sql
var FS embed.FS
