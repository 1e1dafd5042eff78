package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// InsertProduct stores a new product. A blank description is stored as NULL.
// If the handle turns out to be closed the insert is replayed once on a
// reopened handle.
func (s *Store) InsertProduct(name string, quantity int, description string) bool {
	id, err := s.insertProduct(name, quantity, description)
	s.report("insert_product", err)
	return err == nil && id > 0
}

func (s *Store) insertProduct(name string, quantity int, description string) (int64, error) {
	query := s.query(`INSERT INTO products (name, quantity, description) VALUES (?, ?, ?) RETURNING id`)

	var id int64
	err := s.runWithReopen("insert_product", func(ctx context.Context, conn *sql.DB) error {
		return conn.QueryRowContext(ctx, query, name, quantity, nullableText(description)).Scan(&id)
	})
	return id, err
}

// GetAllProducts returns every product in storage order. A NULL description
// is returned as "". On failure the result is empty.
func (s *Store) GetAllProducts() []models.Product {
	products, err := s.getAllProducts()
	s.report("get_all_products", err)
	if err != nil {
		return []models.Product{}
	}
	return products
}

func (s *Store) getAllProducts() ([]models.Product, error) {
	products := []models.Product{}
	err := s.run("get_all_products", func(ctx context.Context, conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, `SELECT id, name, quantity, description FROM products`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p models.Product
			var description sql.NullString
			if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &description); err != nil {
				return err
			}
			p.Description = description.String
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProduct replaces the fields of the product with the given id. It
// reports false when no row matched.
func (s *Store) UpdateProduct(id int64, name string, quantity int, description string) bool {
	err := s.updateProduct(id, name, quantity, description)
	s.report("update_product", err)
	return err == nil
}

func (s *Store) updateProduct(id int64, name string, quantity int, description string) error {
	query := s.query(`UPDATE products SET name = ?, quantity = ?, description = ? WHERE id = ?`)
	return s.run("update_product", func(ctx context.Context, conn *sql.DB) error {
		res, err := conn.ExecContext(ctx, query, name, quantity, nullableText(description), id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// DeleteProduct removes the product with the given id. Deleting an id that
// does not exist reports false.
func (s *Store) DeleteProduct(id int64) bool {
	err := s.deleteProduct(id)
	s.report("delete_product", err)
	return err == nil
}

func (s *Store) deleteProduct(id int64) error {
	query := s.query(`DELETE FROM products WHERE id = ?`)
	return s.run("delete_product", func(ctx context.Context, conn *sql.DB) error {
		res, err := conn.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

func requireRows(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// nullableText maps blank text to NULL.
func nullableText(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
