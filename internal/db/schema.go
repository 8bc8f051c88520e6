package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// one statement set per driver; only the id column differs
var schemas = map[string]string{
	"postgres": `
CREATE TABLE IF NOT EXISTS tasks (
  id BIGSERIAL PRIMARY KEY,
  description TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
`,
	"sqlite3": `
CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  description TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
`,
}

// Migrate creates the tasks table if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driverName string) error {
	ddl, ok := schemas[driverName]
	if !ok {
		return errors.Errorf("no schema for driver %q", driverName)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "could not create tasks schema")
	}
	return nil
}
