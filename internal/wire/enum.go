// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package wire contains the small encoding helpers shared by the generated
// style model packages: closed string enums and query parameters.
package wire

import (
	"reflect"

	"github.com/toeirei/emclient/apierr"
)

// ParseEnum returns the member of known equal to s. Unknown tokens are an
// error; there is no fallback member.
func ParseEnum[T ~string](s string, known []T) (T, error) {
	for _, k := range known {
		if string(k) == s {
			return k, nil
		}
	}
	var zero T
	return zero, apierr.Errorf("unknown %s value %q", reflect.TypeOf(zero).Name(), s)
}

// MarshalEnum encodes v, refusing values outside known.
func MarshalEnum[T ~string](v T, known []T) ([]byte, error) {
	if _, err := ParseEnum(string(v), known); err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// UnmarshalEnum decodes text into dst, refusing tokens outside known.
func UnmarshalEnum[T ~string](text []byte, known []T, dst *T) error {
	v, err := ParseEnum(string(text), known)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// EnumPtr converts an optional enum into an optional string, for query parameters.
func EnumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
