package repo

import (
	"context"
	"database/sql"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// Summary returns aggregate counts over both collections.
func (s *Store) Summary() (models.Summary, bool) {
	var m models.Summary
	err := s.run("summary", func(ctx context.Context, conn *sql.DB) error {
		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM products`).
			Scan(&m.TotalProducts, &m.TotalQuantity); err != nil {
			return err
		}
		return conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&m.TotalUsers)
	})
	s.report("summary", err)
	return m, err == nil
}
