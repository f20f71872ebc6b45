// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package exclusive serializes calls into a single wrapped value. A call
// that arrives while another one is in flight on the same Cell fails
// immediately with ErrInUse; nothing is queued and nothing blocks.
package exclusive

import (
	"sync"

	"github.com/toeirei/emclient/apierr"
)

// ErrInUse is returned when a Cell is already serving a call.
var ErrInUse = apierr.New("client is already in use by another call")

// Cell owns a value and hands it out to one call at a time.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
}

// New wraps v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Do runs fn with exclusive access to the wrapped value.
func Do[T, R any](c *Cell[T], fn func(T) (R, error)) (R, error) {
	if !c.mu.TryLock() {
		var zero R
		return zero, ErrInUse
	}
	defer c.mu.Unlock()
	return fn(c.value)
}

// Run is Do for calls without a result value.
func Run[T any](c *Cell[T], fn func(T) error) error {
	_, err := Do(c, func(v T) (struct{}, error) {
		return struct{}{}, fn(v)
	})
	return err
}
