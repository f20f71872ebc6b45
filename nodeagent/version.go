// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

const (
	// BasePath prefixes every node agent route.
	BasePath = "/v1"
	// APIVersion is the node agent API version this package was written against.
	APIVersion = "1.0.0"
)
