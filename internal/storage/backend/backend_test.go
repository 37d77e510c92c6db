package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/groupbuy/internal/storage/memory"
	"github.com/mmynk/groupbuy/internal/storage/sqlite"
)

func TestKind(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"", "memory"},
		{"memory:", "memory"},
		{"redis://localhost:6379/0", "redis"},
		{"rediss://user:pw@cache:6380/1", "redis"},
		{"libsql://groupbuy.turso.io?authToken=x", "libsql"},
		{"wss://groupbuy.turso.io", "libsql"},
		{"./data/groupbuy.db", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.want+" "+tt.dsn, func(t *testing.T) {
			if got := Kind(tt.dsn); got != tt.want {
				t.Errorf("Kind(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		m := Open(ctx, "memory:")
		defer m.Close()
		if _, ok := m.(*memory.Store); !ok {
			t.Errorf("Open(memory:) = %T, want *memory.Store", m)
		}
	})

	t.Run("sqlite file", func(t *testing.T) {
		m := Open(ctx, filepath.Join(t.TempDir(), "groupbuy.db"))
		defer m.Close()
		if _, ok := m.(*sqlite.SQLiteStore); !ok {
			t.Errorf("Open(file) = %T, want *sqlite.SQLiteStore", m)
		}
	})

	t.Run("falls back when sqlite cannot open", func(t *testing.T) {
		// A regular file where the parent directory should be makes MkdirAll fail.
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatalf("write blocker: %v", err)
		}
		m := Open(ctx, filepath.Join(blocker, "sub", "groupbuy.db"))
		defer m.Close()
		if _, ok := m.(*memory.Store); !ok {
			t.Errorf("Open(unusable path) = %T, want *memory.Store fallback", m)
		}
	})

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		m := Open(ctx, "redis://127.0.0.1:1/0")
		defer m.Close()
		if _, ok := m.(*memory.Store); !ok {
			t.Errorf("Open(unreachable redis) = %T, want *memory.Store fallback", m)
		}
	})
}
