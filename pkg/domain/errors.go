package domain

import "errors"

// Common domain errors. Handlers map these to HTTP statuses in one place.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest is returned when input fails business validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned on duplicate usernames and blocked deletes.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds for withdrawal")
	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
