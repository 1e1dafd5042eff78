// Package inventory is the caller-side layer over the record store: it
// validates and trims input before handing it to the repositories, and turns
// their boolean outcomes into errors a front end can show.
package inventory

import (
	"errors"
	"strings"

	"github.com/rogerio-castellano/inventory-store/internal/models"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrProductNotSaved      = errors.New("could not save product")
	ErrProductNotChanged    = errors.New("product not found or not changed")
	ErrRegistrationRejected = errors.New("registration failed: username or email already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSummaryUnavailable   = errors.New("summary unavailable")
)

type Service struct {
	products repo.ProductRepository
	users    repo.UserRepository
	summary  repo.SummaryRepository
	logger   *zap.Logger
}

func NewService(products repo.ProductRepository, users repo.UserRepository, summary repo.SummaryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products: products,
		users:    users,
		summary:  summary,
		logger:   logger.Named("inventory"),
	}
}

func (s *Service) AddProduct(name string, quantity int, description string) error {
	name = strings.TrimSpace(name)
	if errs := validateProduct(name, quantity); len(errs) > 0 {
		return errs
	}
	if !s.products.InsertProduct(name, quantity, description) {
		return ErrProductNotSaved
	}
	s.logger.Info("product added", zap.String("name", name), zap.Int("quantity", quantity))
	return nil
}

func (s *Service) ListProducts() []models.Product {
	return s.products.GetAllProducts()
}

func (s *Service) EditProduct(id int64, name string, quantity int, description string) error {
	name = strings.TrimSpace(name)
	if errs := validateProduct(name, quantity); len(errs) > 0 {
		return errs
	}
	if !s.products.UpdateProduct(id, name, quantity, description) {
		return ErrProductNotChanged
	}
	s.logger.Info("product updated", zap.Int64("id", id))
	return nil
}

func (s *Service) RemoveProduct(id int64) error {
	if !s.products.DeleteProduct(id) {
		return ErrProductNotChanged
	}
	s.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}

// Register trims every field, checks the confirmation and creates the account.
func (s *Service) Register(username, email, password, confirm string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	if errs := validateRegistration(username, password, confirm); len(errs) > 0 {
		return errs
	}
	if !s.users.Create(username, email, password) {
		return ErrRegistrationRejected
	}
	s.logger.Info("user registered", zap.String("username", username))
	return nil
}

func (s *Service) Login(username, password string) error {
	if !s.users.Authenticate(username, password) {
		s.logger.Debug("login rejected", zap.String("username", username))
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Service) Summary() (models.Summary, error) {
	m, ok := s.summary.Summary()
	if !ok {
		return models.Summary{}, ErrSummaryUnavailable
	}
	return m, nil
}
