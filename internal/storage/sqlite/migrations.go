package sqlite

import "database/sql"

// schema holds one row per storage key. Values are opaque JSON strings;
// the row for storage.CollectionKey is the whole group-buy collection.
const schema = `
CREATE TABLE IF NOT EXISTS kv_items (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
