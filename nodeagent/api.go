// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import (
	"context"

	"github.com/google/uuid"
)

// CertificateAPI issues enclave certificates through the agent.
type CertificateAPI interface {
	// IssueCertificate submits a CSR. The returned task may still be in
	// progress; poll GetIssueCertificateResponse with its id.
	IssueCertificate(ctx context.Context, req IssueCertificateRequest) (IssueCertificateResponse, error)

	GetIssueCertificateResponse(ctx context.Context, taskID uuid.UUID) (IssueCertificateResponse, error)
}

// EnclaveAPI covers enclave attestation.
type EnclaveAPI interface {
	GetFortanixAttestation(ctx context.Context, req GetFortanixAttestationRequest) (GetFortanixAttestationResponse, error)

	GetTargetInfo(ctx context.Context) (TargetInfo, error)
}

type SystemAPI interface {
	GetAgentVersion(ctx context.Context) (AgentVersion, error)
}

// API is the full node agent surface.
type API interface {
	CertificateAPI
	EnclaveAPI
	SystemAPI
}

// Composite builds an API out of one implementation per resource area.
// Every API method is promoted from, and answered by, the matching field.
type Composite struct {
	CertificateAPI
	EnclaveAPI
	SystemAPI
}

var _ API = (*Composite)(nil)

// Compose returns a Composite whose areas are all served by api. Fields can
// be replaced afterwards to swap out a single area.
func Compose(api API) *Composite {
	return &Composite{
		CertificateAPI: api,
		EnclaveAPI:     api,
		SystemAPI:      api,
	}
}
