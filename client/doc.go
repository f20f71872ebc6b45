// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client provides the lightweight JSON-over-HTTP transport shared by
// the Enclave Manager and node agent clients. It knows nothing about
// individual operations: callers describe a request (method, path, content
// types, body) and receive the decoded response or an opaque *apierr.Error.
package client
