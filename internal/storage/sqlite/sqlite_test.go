package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("New creates parent directories", func(t *testing.T) {
		if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
			t.Errorf("expected database directory to exist: %v", err)
		}
	})

	t.Run("GetItem on missing key", func(t *testing.T) {
		value, ok, err := store.GetItem(ctx, "missing")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if ok || value != "" {
			t.Errorf("GetItem(missing) = %q, %v; want empty, false", value, ok)
		}
	})

	t.Run("SetItem then GetItem", func(t *testing.T) {
		if err := store.SetItem(ctx, "groupbuys_v1", `[{"id":"g1"}]`); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		value, ok, err := store.GetItem(ctx, "groupbuys_v1")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if !ok || value != `[{"id":"g1"}]` {
			t.Errorf("GetItem = %q, %v", value, ok)
		}
	})

	t.Run("SetItem overwrites", func(t *testing.T) {
		if err := store.SetItem(ctx, "k", "one"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := store.SetItem(ctx, "k", "two"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		value, _, _ := store.GetItem(ctx, "k")
		if value != "two" {
			t.Errorf("value = %q, want %q", value, "two")
		}
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := first.SetItem(ctx, "groupbuys_v1", "[]"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	first.Close()

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer second.Close()

	value, ok, err := second.GetItem(ctx, "groupbuys_v1")
	if err != nil || !ok || value != "[]" {
		t.Errorf("after reopen GetItem = %q, %v, %v", value, ok, err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"./data/groupbuy.db", false},
		{"/tmp/x.db", false},
		{"libsql://groupbuy-user.turso.io", true},
		{"wss://groupbuy-user.turso.io", true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			if got := isRemote(tt.dsn); got != tt.want {
				t.Errorf("isRemote(%q) = %v, want %v", tt.dsn, got, tt.want)
			}
		})
	}
}
