// Package store persists users mirrored from the identity provider.
package store

import (
	"log/slog"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// Open picks the store implementation from dsn: postgres:// and
// postgresql:// URLs use Postgres, anything else is a SQLite path with an
// optional sqlite:// prefix.
func Open(dsn string, logger *slog.Logger) (model.UserStore, error) {
	driver, target := parseDSN(dsn)
	logger.Info("opening user store", "driver", driver)

	if driver == "postgres" {
		s, err := NewPostgresStore(target)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := NewSQLiteStore(target)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parseDSN(dsn string) (driver, target string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://")
	default:
		return "sqlite", dsn
	}
}
