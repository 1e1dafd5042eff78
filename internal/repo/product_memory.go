package repo

import (
	"strings"
	"sync"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int64
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// InsertProduct adds a new product to the repository.
func (r *InMemoryProductRepository) InsertProduct(name string, quantity int, description string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, models.Product{
		ID:          r.nextID,
		Name:        name,
		Quantity:    quantity,
		Description: normalizeDescription(description),
	})
	r.nextID++
	return true
}

// GetAllProducts retrieves all products in insertion order.
func (r *InMemoryProductRepository) GetAllProducts() []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// UpdateProduct modifies an existing product in the repository.
func (r *InMemoryProductRepository) UpdateProduct(id int64, name string, quantity int, description string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products[i] = models.Product{
				ID:          id,
				Name:        name,
				Quantity:    quantity,
				Description: normalizeDescription(description),
			}
			return true
		}
	}
	return false
}

// DeleteProduct removes a product from the repository by its ID.
func (r *InMemoryProductRepository) DeleteProduct(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return true
		}
	}
	return false
}

func normalizeDescription(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
