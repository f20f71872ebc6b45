// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements emctl, the command-line client for the Enclave
// Manager and node agent APIs, using Cobra. Commands stay thin: they parse
// flags, call the emclient or nodeagent packages and render the result.
package cli
