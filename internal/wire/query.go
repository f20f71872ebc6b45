// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package wire

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Query collects optional query parameters, skipping absent ones.
type Query struct {
	values url.Values
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Set(key string, v *string) *Query {
	if v != nil {
		q.values.Set(key, *v)
	}
	return q
}

func (q *Query) SetInt32(key string, v *int32) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatInt(int64(*v), 10))
	}
	return q
}

func (q *Query) SetBool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

func (q *Query) SetUUID(key string, v *uuid.UUID) *Query {
	if v != nil {
		q.values.Set(key, v.String())
	}
	return q
}

// Values returns the collected parameters, or nil when none were set.
func (q *Query) Values() url.Values {
	if len(q.values) == 0 {
		return nil
	}
	return q.values
}

// Path joins escaped segments onto prefix.
func Path(prefix string, segments ...string) string {
	p := prefix
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
