package domain

import "errors"

var (
	// ErrValidation: input rejected before the store is touched.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: no comment with the given id.
	ErrNotFound = errors.New("comment not found")
	// ErrUnauthorized: the caller is neither the author nor an allowed admin.
	ErrUnauthorized = errors.New("caller is not allowed to modify this comment")
	// ErrInfrastructure: store failure; the cause stays in the chain.
	ErrInfrastructure = errors.New("storage failure")
)
