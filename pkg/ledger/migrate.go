package ledger

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// migrate brings db up to the latest schema version.
func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("ledger: goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("ledger: goose up: %w", err)
	}

	return nil
}
