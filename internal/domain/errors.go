package domain

import "errors"

// Sentinel errors for catalog and storage operations
var (
	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("catalog api key is invalid")

	// ErrUnavailable indicates the catalog could not be reached
	ErrUnavailable = errors.New("catalog is unreachable")

	// ErrMalformed indicates the catalog returned a payload we could not decode
	ErrMalformed = errors.New("malformed catalog response")

	// ErrNoAPIKey indicates no API key has been configured
	ErrNoAPIKey = errors.New("no catalog api key configured")
)
