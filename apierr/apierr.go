// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package apierr holds the single error type returned by the API clients.
// Errors carry a human readable description only; transport and decoding
// details are flattened into that string and never exposed as values.
package apierr

import "fmt"

// Error is an opaque API client failure.
type Error struct {
	description string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.description
}

// New returns an Error with the given description.
func New(description string) *Error {
	return &Error{description: description}
}

// Errorf formats a description according to a format specifier.
func Errorf(format string, args ...any) *Error {
	return &Error{description: fmt.Sprintf(format, args...)}
}

// Wrap stringifies err. A nil err yields nil.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{description: err.Error()}
}

// FromJSON reports a response or request body that does not match the
// expected schema.
func FromJSON(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{description: fmt.Sprintf("invalid json: %v", err)}
}
