// Package backend picks a storage.Medium from a DSN.
package backend

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/groupbuy/internal/storage"
	"github.com/mmynk/groupbuy/internal/storage/memory"
	"github.com/mmynk/groupbuy/internal/storage/redis"
	"github.com/mmynk/groupbuy/internal/storage/sqlite"
)

// Open returns the medium named by dsn:
//
//	""  or "memory:"            in-process map
//	redis://..., rediss://...   Redis
//	libsql://..., wss://...     Turso (libsql)
//	anything else               local SQLite file path
//
// If the medium cannot be opened, Open logs a warning and returns an in-process
// medium so the session can still run.
func Open(ctx context.Context, dsn string) storage.Medium {
	m, err := open(ctx, dsn)
	if err != nil {
		slog.Warn("Storage unavailable, falling back to in-process memory",
			"backend", Kind(dsn),
			"error", err,
		)
		return memory.New()
	}
	slog.Info("Storage initialized", "backend", Kind(dsn))
	return m
}

// Kind names the medium dsn selects, without exposing credentials.
func Kind(dsn string) string {
	switch {
	case dsn == "" || dsn == "memory:":
		return "memory"
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return "redis"
	case strings.HasPrefix(dsn, "libsql://"), strings.HasPrefix(dsn, "wss://"):
		return "libsql"
	default:
		return "sqlite"
	}
}

func open(ctx context.Context, dsn string) (storage.Medium, error) {
	switch Kind(dsn) {
	case "memory":
		return memory.New(), nil
	case "redis":
		return redis.New(ctx, dsn)
	default:
		return sqlite.New(dsn)
	}
}
