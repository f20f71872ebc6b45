// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"context"
	"io"
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

// exchange is one request seen by the fake manager.
type exchange struct {
	method      string
	path        string
	query       string
	contentType string
	accept      string
	auth        string
	body        string
}

// fakeManager answers every request with reply and records what it saw.
type fakeManager struct {
	srv    *httptest.Server
	seen   []exchange
	status int
	reply  string
}

func newFakeManager(t *testing.T) *fakeManager {
	t.Helper()
	f := &fakeManager{status: http.StatusOK}
	r := chi.NewRouter()
	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.seen = append(f.seen, exchange{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			accept:      r.Header.Get("Accept"),
			auth:        r.Header.Get("Authorization"),
			body:        string(body),
		})
		if f.reply != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.reply)
	})
	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeManager) last(t *testing.T) exchange {
	t.Helper()
	require.NotEmpty(t, f.seen)
	return f.seen[len(f.seen)-1]
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := client.NewDefaultConfig()
	cfg.BaseURL = baseURL
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestClient_Routes(t *testing.T) {
	id := uuid.MustParse("a3b1c2d4-0000-4000-8000-000000000001")
	node := uuid.MustParse("a3b1c2d4-0000-4000-8000-000000000002")
	ctx := context.Background()

	cases := []struct {
		name   string
		call   func(c *Client) (any, error)
		method string
		path   string
		query  string
		body   string
		reply  string
		want   any
	}{
		{
			name:   "Authenticate",
			call:   func(c *Client) (any, error) { return c.Authenticate(ctx, AuthRequest{Username: "u", Password: "p"}) },
			method: http.MethodPost, path: "/v1/sys/auth",
			body:  `{"username":"u","password":"p"}`,
			reply: `{"access_token":"tok","expires_in":3600}`,
			want:  AuthResponse{AccessToken: ptrs.Of("tok"), ExpiresIn: ptrs.Of[int64](3600)},
		},
		{
			name:   "Logout",
			call:   func(c *Client) (any, error) { return nil, c.Logout(ctx) },
			method: http.MethodPost, path: "/v1/sys/logout",
		},
		{
			name:   "GetManagerVersion",
			call:   func(c *Client) (any, error) { return c.GetManagerVersion(ctx) },
			method: http.MethodGet, path: "/v1/sys/version",
			reply: `{"version":"3.1.0","server_mode":"SAAS"}`,
			want:  Version{Version: "3.1.0", ServerMode: ptrs.Of("SAAS")},
		},
		{
			name:   "SelectAccount",
			call:   func(c *Client) (any, error) { return nil, c.SelectAccount(ctx, id) },
			method: http.MethodPost, path: "/v1/accounts/select_account/" + id.String(),
		},
		{
			name: "UpdateAccount",
			call: func(c *Client) (any, error) {
				return c.UpdateAccount(ctx, id, AccountUpdateRequest{Name: ptrs.Of("renamed")})
			},
			method: http.MethodPatch, path: "/v1/accounts/" + id.String(),
			body:  `{"name":"renamed"}`,
			reply: `{"name":"renamed","roles":["MANAGER"]}`,
			want:  Account{Name: "renamed", Roles: []AccessRole{AccessRoleManager}},
		},
		{
			name:   "GetAccounts",
			call:   func(c *Client) (any, error) { return c.GetAccounts(ctx) },
			method: http.MethodGet, path: "/v1/accounts",
			reply: `{"items":[{"name":"a"},{"name":"b"}]}`,
			want:  AccountListResponse{Items: []Account{{Name: "a"}, {Name: "b"}}},
		},
		{
			name: "GetAllApps",
			call: func(c *Client) (any, error) {
				return c.GetAllApps(ctx, GetAllAppsParams{ListParams: ListParams{Limit: ptrs.Of[int32](5)}, Name: ptrs.Of("web")})
			},
			method: http.MethodGet, path: "/v1/apps", query: "limit=5&name=web",
			reply: `{"metadata":{"page":1,"pages":1,"total_count":1,"filtered_count":1},"items":[]}`,
			want: GetAllAppsResponse{
				Metadata: &SearchMetadata{Page: 1, Pages: 1, TotalCount: 1, FilteredCount: 1},
				Items:    []App{},
			},
		},
		{
			name:   "GetAppCertificate",
			call:   func(c *Client) (any, error) { return c.GetAppCertificate(ctx, node, id) },
			method: http.MethodGet, path: "/v1/apps/" + id.String() + "/node/" + node.String() + "/certificate",
			reply: `{"status":"ISSUED","certificate":"pem"}`,
			want:  Certificate{Status: ptrs.Of(CertificateStatusIssued), Certificate: ptrs.Of("pem")},
		},
		{
			name:   "GetApplicationConfig escapes id",
			call:   func(c *Client) (any, error) { return c.GetApplicationConfig(ctx, "cfg 1") },
			method: http.MethodGet, path: "/v1/app_configs/cfg 1",
			reply: `{"config_id":"cfg 1","name":"c","app_config":{}}`,
			want: ApplicationConfigResponse{
				ConfigID:  ptrs.Of("cfg 1"),
				Name:      "c",
				AppConfig: map[string]ApplicationConfigContents{},
			},
		},
		{
			name: "Approve",
			call: func(c *Client) (any, error) {
				return c.Approve(ctx, id, ApproveRequest{Note: ptrs.Of("ok")})
			},
			method: http.MethodPost, path: "/v1/approval_requests/" + id.String() + "/approve",
			body:  `{"note":"ok"}`,
			reply: `{"status":"APPROVED"}`,
			want:  ApprovalRequest{Status: ptrs.Of(ApprovalStatusApproved)},
		},
		{
			name:   "GetApprovalRequestResult",
			call:   func(c *Client) (any, error) { return c.GetApprovalRequestResult(ctx, id) },
			method: http.MethodPost, path: "/v1/approval_requests/" + id.String() + "/result",
			reply: `{"status":500,"body":{"message":"boom"}}`,
			want:  ApprovableResult{Status: 500, Body: []byte(`{"message":"boom"}`)},
		},
		{
			name: "ConvertAppBuild",
			call: func(c *Client) (any, error) {
				return c.ConvertAppBuild(ctx, ConvertAppBuildRequest{AppID: id})
			},
			method: http.MethodPost, path: "/v1/builds/convert-app",
			body:  `{"app_id":"` + id.String() + `"}`,
			reply: `{"mrenclave":"e","mrsigner":"s","isvprodid":1,"isvsvn":1,"status":"WHITELISTED"}`,
			want:  Build{MrEnclave: "e", MrSigner: "s", IsvProdID: 1, IsvSvn: 1, Status: ptrs.Of(BuildStatusWhitelisted)},
		},
		{
			name: "NewCertificate",
			call: func(c *Client) (any, error) {
				return c.NewCertificate(ctx, NewCertificateRequest{Csr: ptrs.Of("csr"), NodeID: &node})
			},
			method: http.MethodPost, path: "/v1/certificates",
			body:  `{"csr":"csr","node_id":"` + node.String() + `"}`,
			reply: `{"task_id":"` + id.String() + `","task_type":"CERTIFICATE_ISSUANCE","task_status":"INPROGRESS"}`,
			want: TaskResult{
				TaskID:     &id,
				TaskType:   ptrs.Of(TaskTypeCertificateIssuance),
				TaskStatus: ptrs.Of(TaskStatusInProgress),
			},
		},
		{
			name: "GetAllNodes",
			call: func(c *Client) (any, error) {
				return c.GetAllNodes(ctx, GetAllNodesParams{Status: ptrs.Of(NodeStatusFailed)})
			},
			method: http.MethodGet, path: "/v1/nodes", query: "status=FAILED",
			reply: `{"items":[{"name":"n1","status":"FAILED"}]}`,
			want:  GetAllNodesResponse{Items: []Node{{Name: "n1", Status: ptrs.Of(NodeStatusFailed)}}},
		},
		{
			name:   "DeactivateNode",
			call:   func(c *Client) (any, error) { return nil, c.DeactivateNode(ctx, node) },
			method: http.MethodPost, path: "/v1/nodes/" + node.String() + "/deactivate",
		},
		{
			name:   "GetRegistryForImage",
			call:   func(c *Client) (any, error) { return c.GetRegistryForImage(ctx, "docker.io/library/nginx:1") },
			method: http.MethodGet, path: "/v1/registry/image", query: "image_name=docker.io%2Flibrary%2Fnginx%3A1",
			reply: `{"url":"docker.io"}`,
			want:  Registry{URL: "docker.io"},
		},
		{
			name:   "GetAllRegistries",
			call:   func(c *Client) (any, error) { return c.GetAllRegistries(ctx) },
			method: http.MethodGet, path: "/v1/registry",
			reply: `[{"url":"a"},{"url":"b"}]`,
			want:  []Registry{{URL: "a"}, {URL: "b"}},
		},
		{
			name:   "GetTaskStatus",
			call:   func(c *Client) (any, error) { return c.GetTaskStatus(ctx, id) },
			method: http.MethodGet, path: "/v1/tasks/status/" + id.String(),
			reply: `{"task_status":"FAILED"}`,
			want:  TaskResult{TaskStatus: ptrs.Of(TaskStatusFailed)},
		},
		{
			name: "UpdateTask",
			call: func(c *Client) (any, error) {
				return nil, c.UpdateTask(ctx, id, TaskUpdateRequest{Status: ApprovalStatusDenied})
			},
			method: http.MethodPatch, path: "/v1/tasks/" + id.String(),
			body: `{"status":"DENIED"}`,
		},
		{
			name:   "GetLoggedInUser",
			call:   func(c *Client) (any, error) { return c.GetLoggedInUser(ctx) },
			method: http.MethodGet, path: "/v1/users/current",
			reply: `{"user_email":"me@example.com","email_verified":true}`,
			want:  User{UserEmail: "me@example.com", EmailVerified: ptrs.Of(true)},
		},
		{
			name: "ChangePassword",
			call: func(c *Client) (any, error) {
				return nil, c.ChangePassword(ctx, PasswordChangeRequest{CurrentPassword: "a", NewPassword: "b"})
			},
			method: http.MethodPost, path: "/v1/users/change_password",
			body: `{"current_password":"a","new_password":"b"}`,
		},
		{
			name: "UpdateWorkflowGraph",
			call: func(c *Client) (any, error) {
				return c.UpdateWorkflowGraph(ctx, id, UpdateWorkflowGraph{Version: 2})
			},
			method: http.MethodPut, path: "/v1/workflows/draft/graphs/" + id.String(),
			body:  `{"version":2}`,
			reply: `{"name":"g","objects":{},"edges":{}}`,
			want: WorkflowGraph{
				Name:    "g",
				Objects: map[string]WorkflowObject{},
				Edges:   map[string]WorkflowEdge{},
			},
		},
		{
			name:   "DeleteWorkflowGraph",
			call:   func(c *Client) (any, error) { return nil, c.DeleteWorkflowGraph(ctx, id) },
			method: http.MethodDelete, path: "/v1/workflows/draft/graphs/" + id.String(),
		},
		{
			name:   "GetZoneJoinToken",
			call:   func(c *Client) (any, error) { return c.GetZoneJoinToken(ctx, id) },
			method: http.MethodGet, path: "/v1/zones/" + id.String() + "/token",
			reply: `{"token":"join-me"}`,
			want:  ZoneJoinToken{Token: ptrs.Of("join-me")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeManager(t)
			f.reply = tc.reply
			c := newClient(t, f.srv.URL)

			got, err := tc.call(c)
			require.NoError(t, err)
			if tc.want != nil {
				assert.Equal(t, tc.want, got)
			}

			ex := f.last(t)
			assert.Equal(t, tc.method, ex.method)
			assert.Equal(t, tc.path, ex.path)
			assert.Equal(t, tc.query, ex.query)
			assert.Equal(t, "application/json", ex.accept)
			if tc.body == "" {
				assert.Empty(t, ex.body)
				assert.Empty(t, ex.contentType)
			} else {
				assert.JSONEq(t, tc.body, ex.body)
				assert.Equal(t, "application/json", ex.contentType)
			}
		})
	}
}

func TestClient_BearerToken(t *testing.T) {
	f := newFakeManager(t)
	f.reply = `{"version":"1"}`
	c := newClient(t, f.srv.URL)

	_, err := c.GetManagerVersion(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.last(t).auth)

	c.SetToken("s3cret")
	_, err = c.GetManagerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", f.last(t).auth)
}

func TestClient_NonSuccessStatusIsError(t *testing.T) {
	f := newFakeManager(t)
	f.status = http.StatusForbidden
	f.reply = `{"message":"not a manager"}`
	c := newClient(t, f.srv.URL)

	_, err := c.GetNode(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "not a manager")

	err = c.DeleteUser(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestClient_FailedTaskIsReturnedNotRaised(t *testing.T) {
	f := newFakeManager(t)
	f.reply = `{"task_status":"DENIED","task_type":"NODE_ATTESTATION"}`
	c := newClient(t, f.srv.URL)

	res, err := c.ProvisionNode(context.Background(), NodeProvisionRequest{Name: "n", IPAddress: "10.0.0.9"})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusDenied, *res.TaskStatus)
	assert.JSONEq(t, `{"name":"n","ipaddress":"10.0.0.9"}`, f.last(t).body)
}

func TestClient_UnknownEnumInResponseIsDecodeError(t *testing.T) {
	f := newFakeManager(t)
	f.reply = `{"name":"n","status":"MELTING"}`
	c := newClient(t, f.srv.URL)

	_, err := c.GetNode(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid json")
}

func TestClient_InvalidRequestIsNotSent(t *testing.T) {
	f := newFakeManager(t)
	c := newClient(t, f.srv.URL)

	err := c.UpdateTask(context.Background(), uuid.New(), TaskUpdateRequest{Status: "MAYBE"})
	require.Error(t, err)
	assert.Empty(t, f.seen)
}

func TestRegistry_CoversEveryOperation(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, apiType.NumMethod())
	for i := 0; i < apiType.NumMethod(); i++ {
		op := Operation(apiType.Method(i).Name)
		ct, ok := ResponseContentType(op)
		assert.True(t, ok, "%s has no response content type", op)
		assert.Equal(t, "application/json", ct)
	}
	assert.Len(t, requestContentTypes, 24)
	for op, ct := range requestContentTypes {
		_, ok := responseContentTypes[op]
		assert.True(t, ok, "%s", op)
		assert.Equal(t, "application/json", ct)
	}
	_, ok := RequestContentType(OpGetNode)
	assert.False(t, ok)
	_, ok = ResponseContentType(Operation("Nope"))
	assert.False(t, ok)
}
