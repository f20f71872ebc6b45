// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import (
	"context"

	"github.com/google/uuid"

	"github.com/toeirei/emclient/internal/exclusive"
)

type exclusiveAPI struct {
	cell *exclusive.Cell[API]
}

// NewExclusive wraps api so that at most one call runs against it at a
// time. A call made while another is in flight, including a re-entrant call
// from inside api, fails immediately with exclusive.ErrInUse.
func NewExclusive(api API) API {
	return &exclusiveAPI{cell: exclusive.New(api)}
}

func (e *exclusiveAPI) IssueCertificate(ctx context.Context, req IssueCertificateRequest) (IssueCertificateResponse, error) {
	return exclusive.Do(e.cell, func(a API) (IssueCertificateResponse, error) {
		return a.IssueCertificate(ctx, req)
	})
}

func (e *exclusiveAPI) GetIssueCertificateResponse(ctx context.Context, taskID uuid.UUID) (IssueCertificateResponse, error) {
	return exclusive.Do(e.cell, func(a API) (IssueCertificateResponse, error) {
		return a.GetIssueCertificateResponse(ctx, taskID)
	})
}

func (e *exclusiveAPI) GetFortanixAttestation(ctx context.Context, req GetFortanixAttestationRequest) (GetFortanixAttestationResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetFortanixAttestationResponse, error) {
		return a.GetFortanixAttestation(ctx, req)
	})
}

func (e *exclusiveAPI) GetTargetInfo(ctx context.Context) (TargetInfo, error) {
	return exclusive.Do(e.cell, func(a API) (TargetInfo, error) {
		return a.GetTargetInfo(ctx)
	})
}

func (e *exclusiveAPI) GetAgentVersion(ctx context.Context) (AgentVersion, error) {
	return exclusive.Do(e.cell, func(a API) (AgentVersion, error) {
		return a.GetAgentVersion(ctx)
	})
}
