package inventory

import (
	"strings"
)

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationErrors lists every rejected field of a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Description
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func validateProduct(name string, quantity int) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Description: "name is required"})
	}
	if quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Description: "quantity cannot be negative"})
	}
	return errs
}

func validateRegistration(username, password, confirm string) ValidationErrors {
	errs := ValidationErrors{}
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Description: "username is required"})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Description: "password is required"})
	}
	if password != confirm {
		errs = append(errs, FieldError{Field: "confirm", Description: "passwords do not match"})
	}
	return errs
}
