package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/rogerio-castellano/inventory-store/internal/db"
	"go.uber.org/zap"
)

// SchemaVersion is the schema version this build creates. Raising it drops
// and recreates every table on the next open: stored rows are not carried over.
const SchemaVersion = 2

const schemaVersionKey = "schema_version"

const metaTable = `CREATE TABLE IF NOT EXISTS store_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

func createStatements(d db.Dialect) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id ` + d.IDColumn + `,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id ` + d.IDColumn + `,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
	}
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS products`,
	`DROP TABLE IF EXISTS users`,
}

// migrate brings conn to target. A fresh database gets both tables; an older
// one has them dropped and recreated.
func migrate(ctx context.Context, conn *sql.DB, d db.Dialect, target int, logger *zap.Logger) error {
	if _, err := conn.ExecContext(ctx, metaTable); err != nil {
		return fmt.Errorf("create store_meta: %w", err)
	}

	current, err := readSchemaVersion(ctx, conn, d)
	if err != nil {
		return err
	}

	switch {
	case current == target:
		return nil
	case current > target:
		return fmt.Errorf("%w: db=%d code=%d", ErrSchemaTooNew, current, target)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration v%d: %w", target, err)
	}

	if current > 0 {
		logger.Warn("upgrading schema: dropping products and users",
			zap.Int("from", current), zap.Int("to", target))
		for _, stmt := range dropStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration v%d drop: %w", target, err)
			}
		}
	}

	for _, stmt := range createStatements(d) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration v%d create: %w", target, err)
		}
	}

	if err := writeSchemaVersion(ctx, tx, d, target); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration v%d: %w", target, err)
	}

	logger.Info("schema ready", zap.Int("from", current), zap.Int("to", target))
	return nil
}

func readSchemaVersion(ctx context.Context, conn *sql.DB, d db.Dialect) (int, error) {
	var raw string
	err := conn.QueryRowContext(ctx, d.Rebind(`SELECT value FROM store_meta WHERE key = ?`), schemaVersionKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", raw, err)
	}
	return version, nil
}

func writeSchemaVersion(ctx context.Context, tx *sql.Tx, d db.Dialect, version int) error {
	query := d.Rebind(`INSERT INTO store_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	if _, err := tx.ExecContext(ctx, query, schemaVersionKey, strconv.Itoa(version)); err != nil {
		return fmt.Errorf("record schema version v%d: %w", version, err)
	}
	return nil
}

// StoredSchemaVersion reads the schema version recorded in the database,
// opening the handle if needed.
func (s *Store) StoredSchemaVersion() (int, error) {
	var version int
	err := s.run("schema_version", func(ctx context.Context, conn *sql.DB) error {
		v, err := readSchemaVersion(ctx, conn, s.dialect)
		version = v
		return err
	})
	return version, err
}
