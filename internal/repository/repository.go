// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongodb) inside this directory.
// No business logic here: strictly persistence operations.
package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the identity or filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid id")
)

// PageQuery holds limit/skip pagination parameters.
type PageQuery struct {
	Limit int
	Skip  int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int64
}
