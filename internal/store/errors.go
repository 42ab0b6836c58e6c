package store

import "errors"

// Typed failures raised by store operations. Validation failures abort the
// mutation with no state change; ErrPersistence means the mutation was
// applied in memory but could not be written.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrAlreadyClaimed     = errors.New("already claimed")
	ErrNotAssigned        = errors.New("task not assigned")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidColor       = errors.New("invalid color")
	ErrPersistence        = errors.New("persistence failure")
)
