package repo

import "github.com/rogerio-castellano/inventory-store/internal/models"

// ProductRepository defines the product operations. Failures are reported
// as false; the cause is logged, never returned.
type ProductRepository interface {
	InsertProduct(name string, quantity int, description string) bool
	GetAllProducts() []models.Product
	UpdateProduct(id int64, name string, quantity int, description string) bool
	DeleteProduct(id int64) bool
}
