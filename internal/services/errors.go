package services

import "errors"

// Recoverable error taxonomy. Handlers map these to client-error statuses;
// anything else is treated as a storage failure and reported generically.
var (
	ErrNoItems          = errors.New("invoice has no items")
	ErrNotFound         = errors.New("invoice not found")
	ErrDuplicateProduct = errors.New("product already exists")
)
