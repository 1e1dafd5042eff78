package repo

import (
	"crypto/subtle"
	"fmt"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// passwordScheme decides how a password is persisted and checked. The plain
// scheme keeps the password verbatim and is the default.
type passwordScheme interface {
	encode(password string) (string, error)
	matches(stored, password string) bool
}

func schemeFor(name string) (passwordScheme, error) {
	switch name {
	case "", config.SchemePlain:
		return plainScheme{}, nil
	case config.SchemeBcrypt:
		return bcryptScheme{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", name)
	}
}

type plainScheme struct{}

func (plainScheme) encode(password string) (string, error) {
	return password, nil
}

func (plainScheme) matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type bcryptScheme struct {
	cost int
}

func (b bcryptScheme) encode(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (bcryptScheme) matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
