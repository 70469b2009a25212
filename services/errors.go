package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses; everything else becomes a generic server error.
var (
	// ErrNotFound means a target id did not resolve to an existing user.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable means the backing store could not be reached or a
	// write failed. Retryable from the client's point of view.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation means a request carried malformed or inconsistent fields.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken means registration was attempted with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means login failed or a token did not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
