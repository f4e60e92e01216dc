// Package kv abstracts the persisted key-value slots the service stores
// its state in. A Slot is one named location holding an opaque payload.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("kv: slot not found")

// Slot is a single persisted value with read-modify-write access.
// Implementations do not interpret the payload.
type Slot interface {
	// Get returns the current payload, or ErrNotFound for an absent slot.
	Get(ctx context.Context) ([]byte, error)

	// Set replaces the payload.
	Set(ctx context.Context, value []byte) error

	// Delete clears the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context) error
}
