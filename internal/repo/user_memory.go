package repo

import (
	"sync"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int64
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  []models.User{},
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) Create(username, email, password string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return false
		}
	}

	r.users = append(r.users, models.User{
		ID:       r.nextID,
		Username: username,
		Email:    email,
		Password: password,
	})
	r.nextID++
	return true
}

func (r *InMemoryUserRepository) Authenticate(username, password string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username && user.Password == password {
			return true
		}
	}
	return false
}

func (r *InMemoryUserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
