// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package nodeagent is a typed client for the Enclave Manager node agent
// API: certificate issuance for enclaves running on the node, Fortanix
// attestation, target info retrieval and the agent version.
//
// The API is split into one interface per resource area (CertificateAPI,
// EnclaveAPI, SystemAPI). API unites them; Composite assembles an API from
// independent implementations and Client implements all of them over HTTP.
package nodeagent
