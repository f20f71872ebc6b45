// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/toeirei/emclient/client"
	"github.com/toeirei/emclient/internal/wire"
)

// Client talks to a node agent over HTTP.
type Client struct {
	http *client.Client
}

var _ API = (*Client)(nil)

// New creates a Client for the agent at cfg.BaseURL.
func New(cfg client.Config) (*Client, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

func request(op Operation, method, path string, query url.Values, body any) client.Request {
	req := client.Request{
		Operation: string(op),
		Method:    method,
		Path:      BasePath + path,
		Query:     query,
		Body:      body,
	}
	req.ContentType, _ = RequestContentType(op)
	req.Accept, _ = ResponseContentType(op)
	return req
}

// --- Certificate ---

func (c *Client) IssueCertificate(ctx context.Context, req IssueCertificateRequest) (IssueCertificateResponse, error) {
	return client.Call[IssueCertificateResponse](ctx, c.http,
		request(OpIssueCertificate, http.MethodPost, "/certificate/issue", nil, req))
}

func (c *Client) GetIssueCertificateResponse(ctx context.Context, taskID uuid.UUID) (IssueCertificateResponse, error) {
	return client.Call[IssueCertificateResponse](ctx, c.http,
		request(OpGetIssueCertificateResponse, http.MethodGet, wire.Path("/certificate/result", taskID.String()), nil, nil))
}

// --- Enclave ---

func (c *Client) GetFortanixAttestation(ctx context.Context, req GetFortanixAttestationRequest) (GetFortanixAttestationResponse, error) {
	return client.Call[GetFortanixAttestationResponse](ctx, c.http,
		request(OpGetFortanixAttestation, http.MethodPost, "/enclave/attest", nil, req))
}

func (c *Client) GetTargetInfo(ctx context.Context) (TargetInfo, error) {
	return client.Call[TargetInfo](ctx, c.http,
		request(OpGetTargetInfo, http.MethodGet, "/enclave/target-info", nil, nil))
}

// --- System ---

func (c *Client) GetAgentVersion(ctx context.Context) (AgentVersion, error) {
	return client.Call[AgentVersion](ctx, c.http,
		request(OpGetAgentVersion, http.MethodGet, "/sys/version", nil, nil))
}
