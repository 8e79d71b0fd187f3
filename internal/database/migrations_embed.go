package database

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed migrations
var migrations embed.FS

// MigrationsFS returns the compiled-in migration set for a SQL dialect
// ("postgres" or "sqlite"), rooted so that its *.up.sql files sit at ".".
func MigrationsFS(dialect string) (fs.FS, error) {
	switch dialect {
	case "postgres", "sqlite":
		return fs.Sub(migrations, "migrations/"+dialect)
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
