package models

// User is a registered account. Password holds whatever the store persisted:
// the plain text by default, or a bcrypt hash when that scheme is enabled.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
