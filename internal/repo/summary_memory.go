package repo

import "github.com/rogerio-castellano/inventory-store/internal/models"

type InMemorySummaryRepository struct {
	productRepo *InMemoryProductRepository
	userRepo    *InMemoryUserRepository
}

func NewInMemorySummaryRepository(productRepo *InMemoryProductRepository, userRepo *InMemoryUserRepository) *InMemorySummaryRepository {
	return &InMemorySummaryRepository{productRepo: productRepo, userRepo: userRepo}
}

// Summary implements SummaryRepository.
func (i *InMemorySummaryRepository) Summary() (models.Summary, bool) {
	m := models.Summary{}

	for _, p := range i.productRepo.GetAllProducts() {
		m.TotalProducts++
		m.TotalQuantity += p.Quantity
	}
	m.TotalUsers = i.userRepo.Count()

	return m, true
}
