package repo

// UserRepository defines account registration and credential checks.
type UserRepository interface {
	Create(username, email, password string) bool
	Authenticate(username, password string) bool
}
