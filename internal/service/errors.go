package service

import "errors"

// Sentinel errors mapped to HTTP problem types at the handler layer.
var (
	// ErrValidation marks caller input that fails domain rules.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream marks a failure in the record store or another backing
	// dependency after retries were exhausted.
	ErrUpstream = errors.New("upstream dependency failed")
)
