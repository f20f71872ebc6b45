// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars holds values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/toeirei/emclient/buildvars.Version=v1.4.0"
package buildvars

var (
	// Version is empty for local or development builds.
	Version string
	// Commit is the short VCS revision the binary was built from.
	Commit string
	// Date is the build time in RFC3339.
	Date string
)

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// UserAgent is the User-Agent header sent by product.
func UserAgent(product string) string {
	return product + "/" + VersionOrDefault("dev")
}
