// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Command emctl is the command-line client for the Enclave Manager and its
// node agents.
//
// Usage:
//
//	go run ./cmd/emctl [flags]
//	./emctl [flags]
//
// See --help for options.
package main

import (
	"os"

	"github.com/toeirei/emclient/internal/logging"
	"github.com/toeirei/emclient/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("emctl: %v", err)
		os.Exit(1)
	}
}
