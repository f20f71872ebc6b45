// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package emclient is a typed client for the Enclave Manager API.
//
// Each resource area of the manager (accounts, apps, builds, nodes, tasks
// and so on) has its own interface. API embeds all of them, Composite
// assembles an API from per-area implementations and Client implements
// every area over HTTP. Wrap an API with NewExclusive to reject overlapping
// calls instead of running them concurrently.
package emclient
