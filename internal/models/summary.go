package models

// Summary aggregates the contents of the store.
type Summary struct {
	TotalProducts int `json:"total_products"`
	TotalQuantity int `json:"total_quantity"`
	TotalUsers    int `json:"total_users"`
}
