package repo

import "github.com/rogerio-castellano/inventory-store/internal/models"

type SummaryRepository interface {
	Summary() (models.Summary, bool)
}
