// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toeirei/emclient/client"
	"github.com/toeirei/emclient/util/ptrs"
)

// fakeAgent serves a minimal node agent. Tasks issued through it succeed on
// the first poll.
func fakeAgent(t *testing.T) *httptest.Server {
	t.Helper()
	taskID := uuid.MustParse("6b1f3c52-8a55-4d8c-9d2e-1b6c0a9e7f10")

	r := chi.NewRouter()
	r.Route(BasePath, func(r chi.Router) {
		r.Post("/certificate/issue", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req IssueCertificateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Csr == nil {
				http.Error(w, "csr required", http.StatusBadRequest)
				return
			}
			writeJSON(w, IssueCertificateResponse{TaskID: &taskID, TaskStatus: ptrs.Of(TaskStatusInProgress)})
		})
		r.Get("/certificate/result/{task_id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "task_id") != taskID.String() {
				http.Error(w, "unknown task", http.StatusNotFound)
				return
			}
			writeJSON(w, IssueCertificateResponse{
				TaskID:      &taskID,
				TaskStatus:  ptrs.Of(TaskStatusSuccess),
				Certificate: ptrs.Of("-----BEGIN CERTIFICATE-----"),
			})
		})
		r.Post("/enclave/attest", func(w http.ResponseWriter, r *http.Request) {
			var req GetFortanixAttestationRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if string(req.Report) != "good-report" {
				writeJSON(w, GetFortanixAttestationResponse{
					Status:  ptrs.Of(ResponseStatusNotOK),
					Message: ptrs.Of("report verification failed"),
				})
				return
			}
			writeJSON(w, GetFortanixAttestationResponse{
				Status:                 ptrs.Of(ResponseStatusOK),
				AttestationCertificate: []byte("attestation-der"),
			})
		})
		r.Get("/enclave/target-info", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"target_info":"AAECAw=="}`))
		})
		r.Get("/sys/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, AgentVersion{Version: "2.4.0"})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := client.NewDefaultConfig()
	cfg.BaseURL = baseURL
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestClient_IssueAndFetchCertificate(t *testing.T) {
	c := newClient(t, fakeAgent(t).URL)
	ctx := context.Background()

	issued, err := c.IssueCertificate(ctx, IssueCertificateRequest{Csr: ptrs.Of("csr-pem")})
	require.NoError(t, err)
	require.NotNil(t, issued.TaskID)
	assert.Equal(t, TaskStatusInProgress, *issued.TaskStatus)
	assert.Nil(t, issued.Certificate)

	result, err := c.GetIssueCertificateResponse(ctx, *issued.TaskID)
	require.NoError(t, err)
	assert.Equal(t, TaskStatusSuccess, *result.TaskStatus)
	assert.Equal(t, "-----BEGIN CERTIFICATE-----", *result.Certificate)
}

func TestClient_ErrorStatusesSurfaceAsErrors(t *testing.T) {
	c := newClient(t, fakeAgent(t).URL)

	_, err := c.IssueCertificate(context.Background(), IssueCertificateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csr required")

	_, err = c.GetIssueCertificateResponse(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_NotOKIsReturnedNotRaised(t *testing.T) {
	c := newClient(t, fakeAgent(t).URL)

	resp, err := c.GetFortanixAttestation(context.Background(), GetFortanixAttestationRequest{Report: []byte("bad")})
	require.NoError(t, err)
	assert.Equal(t, ResponseStatusNotOK, *resp.Status)
	assert.Equal(t, "report verification failed", *resp.Message)

	resp, err = c.GetFortanixAttestation(context.Background(), GetFortanixAttestationRequest{Report: []byte("good-report")})
	require.NoError(t, err)
	assert.Equal(t, ResponseStatusOK, *resp.Status)
	assert.Equal(t, []byte("attestation-der"), resp.AttestationCertificate)
}

func TestClient_TargetInfoAndVersion(t *testing.T) {
	c := newClient(t, fakeAgent(t).URL)

	info, err := c.GetTargetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3}, info.TargetInfo)

	v, err := c.GetAgentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.4.0", v.Version)
}

func TestClient_BadBase64IsDecodeError(t *testing.T) {
	r := chi.NewRouter()
	r.Get(BasePath+"/enclave/target-info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"target_info":"%%%"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, err := newClient(t, srv.URL).GetTargetInfo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid json")
}

func TestRegistry_CoversEveryOperation(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, 5)
	for _, op := range ops {
		ct, ok := ResponseContentType(op)
		assert.True(t, ok, "%s", op)
		assert.Equal(t, "application/json", ct)
	}
	for _, op := range []Operation{OpIssueCertificate, OpGetFortanixAttestation} {
		ct, ok := RequestContentType(op)
		assert.True(t, ok, "%s", op)
		assert.Equal(t, "application/json", ct)
	}
	_, ok := RequestContentType(OpGetTargetInfo)
	assert.False(t, ok)
	_, ok = ResponseContentType(Operation("Nope"))
	assert.False(t, ok)
}
