// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/toeirei/emclient/client"
	"github.com/toeirei/emclient/internal/wire"
)

// Client talks to the Enclave Manager over HTTP.
type Client struct {
	http *client.Client
}

var _ API = (*Client)(nil)

// New creates a Client for the manager at cfg.BaseURL.
func New(cfg client.Config) (*Client, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// SetToken replaces the bearer token sent with later calls.
func (c *Client) SetToken(token string) {
	c.http.SetToken(token)
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

func call[T any](ctx context.Context, c *Client, op Operation, method, path string, query url.Values, body any) (T, error) {
	return client.Call[T](ctx, c.http, request(op, method, path, query, body))
}

func (c *Client) exec(ctx context.Context, op Operation, method, path string, body any) error {
	return c.http.Do(ctx, request(op, method, path, nil, body), nil)
}

func id(prefix string, v uuid.UUID, rest ...string) string {
	return wire.Path(prefix, append([]string{v.String()}, rest...)...)
}

// --- Auth ---

func (c *Client) Authenticate(ctx context.Context, req AuthRequest) (AuthResponse, error) {
	return call[AuthResponse](ctx, c, OpAuthenticate, http.MethodPost, "/sys/auth", nil, req)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.exec(ctx, OpLogout, http.MethodPost, "/sys/logout", nil)
}

// --- System ---

func (c *Client) GetManagerVersion(ctx context.Context) (Version, error) {
	return call[Version](ctx, c, OpGetManagerVersion, http.MethodGet, "/sys/version", nil, nil)
}

// --- Accounts ---

func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) (Account, error) {
	return call[Account](ctx, c, OpCreateAccount, http.MethodPost, "/accounts", nil, req)
}

func (c *Client) GetAccount(ctx context.Context, acctID uuid.UUID) (Account, error) {
	return call[Account](ctx, c, OpGetAccount, http.MethodGet, id("/accounts", acctID), nil, nil)
}

func (c *Client) GetAccounts(ctx context.Context) (AccountListResponse, error) {
	return call[AccountListResponse](ctx, c, OpGetAccounts, http.MethodGet, "/accounts", nil, nil)
}

func (c *Client) UpdateAccount(ctx context.Context, acctID uuid.UUID, req AccountUpdateRequest) (Account, error) {
	return call[Account](ctx, c, OpUpdateAccount, http.MethodPatch, id("/accounts", acctID), nil, req)
}

func (c *Client) DeleteAccount(ctx context.Context, acctID uuid.UUID) error {
	return c.exec(ctx, OpDeleteAccount, http.MethodDelete, id("/accounts", acctID), nil)
}

func (c *Client) SelectAccount(ctx context.Context, acctID uuid.UUID) error {
	return c.exec(ctx, OpSelectAccount, http.MethodPost, id("/accounts/select_account", acctID), nil)
}

// --- Apps ---

func (c *Client) AddApplication(ctx context.Context, req AppRequest) (App, error) {
	return call[App](ctx, c, OpAddApplication, http.MethodPost, "/apps", nil, req)
}

func (c *Client) GetApp(ctx context.Context, appID uuid.UUID) (App, error) {
	return call[App](ctx, c, OpGetApp, http.MethodGet, id("/apps", appID), nil, nil)
}

func (c *Client) GetAllApps(ctx context.Context, params GetAllAppsParams) (GetAllAppsResponse, error) {
	return call[GetAllAppsResponse](ctx, c, OpGetAllApps, http.MethodGet, "/apps", params.query().Values(), nil)
}

func (c *Client) UpdateApp(ctx context.Context, appID uuid.UUID, req AppBodyUpdateRequest) (App, error) {
	return call[App](ctx, c, OpUpdateApp, http.MethodPatch, id("/apps", appID), nil, req)
}

func (c *Client) DeleteApp(ctx context.Context, appID uuid.UUID) error {
	return c.exec(ctx, OpDeleteApp, http.MethodDelete, id("/apps", appID), nil)
}

func (c *Client) GetAppCertificate(ctx context.Context, nodeID, appID uuid.UUID) (Certificate, error) {
	path := id("/apps", appID, "node", nodeID.String(), "certificate")
	return call[Certificate](ctx, c, OpGetAppCertificate, http.MethodGet, path, nil, nil)
}

// --- App configs ---

func (c *Client) CreateApplicationConfig(ctx context.Context, req ApplicationConfig) (ApplicationConfigResponse, error) {
	return call[ApplicationConfigResponse](ctx, c, OpCreateApplicationConfig, http.MethodPost, "/app_configs", nil, req)
}

func (c *Client) GetApplicationConfig(ctx context.Context, configID string) (ApplicationConfigResponse, error) {
	return call[ApplicationConfigResponse](ctx, c, OpGetApplicationConfig, http.MethodGet,
		wire.Path("/app_configs", configID), nil, nil)
}

func (c *Client) GetAllApplicationConfigs(ctx context.Context, params GetAllApplicationConfigsParams) (GetAllApplicationConfigsResponse, error) {
	return call[GetAllApplicationConfigsResponse](ctx, c, OpGetAllApplicationConfigs, http.MethodGet,
		"/app_configs", params.query().Values(), nil)
}

func (c *Client) UpdateApplicationConfig(ctx context.Context, configID string, req UpdateApplicationConfigRequest) (ApplicationConfigResponse, error) {
	return call[ApplicationConfigResponse](ctx, c, OpUpdateApplicationConfig, http.MethodPatch,
		wire.Path("/app_configs", configID), nil, req)
}

func (c *Client) DeleteApplicationConfig(ctx context.Context, configID string) error {
	return c.exec(ctx, OpDeleteApplicationConfig, http.MethodDelete, wire.Path("/app_configs", configID), nil)
}

// --- Approval requests ---

func (c *Client) CreateApprovalRequest(ctx context.Context, req ApprovalRequestRequest) (ApprovalRequest, error) {
	return call[ApprovalRequest](ctx, c, OpCreateApprovalRequest, http.MethodPost, "/approval_requests", nil, req)
}

func (c *Client) GetApprovalRequest(ctx context.Context, requestID uuid.UUID) (ApprovalRequest, error) {
	return call[ApprovalRequest](ctx, c, OpGetApprovalRequest, http.MethodGet,
		id("/approval_requests", requestID), nil, nil)
}

func (c *Client) GetAllApprovalRequests(ctx context.Context, params GetAllApprovalRequestsParams) (GetAllApprovalRequestsResponse, error) {
	return call[GetAllApprovalRequestsResponse](ctx, c, OpGetAllApprovalRequests, http.MethodGet,
		"/approval_requests", params.query().Values(), nil)
}

func (c *Client) Approve(ctx context.Context, requestID uuid.UUID, req ApproveRequest) (ApprovalRequest, error) {
	return call[ApprovalRequest](ctx, c, OpApprove, http.MethodPost,
		id("/approval_requests", requestID, "approve"), nil, req)
}

func (c *Client) Deny(ctx context.Context, requestID uuid.UUID, req DenyRequest) (ApprovalRequest, error) {
	return call[ApprovalRequest](ctx, c, OpDeny, http.MethodPost,
		id("/approval_requests", requestID, "deny"), nil, req)
}

func (c *Client) DeleteApprovalRequest(ctx context.Context, requestID uuid.UUID) error {
	return c.exec(ctx, OpDeleteApprovalRequest, http.MethodDelete, id("/approval_requests", requestID), nil)
}

func (c *Client) GetApprovalRequestResult(ctx context.Context, requestID uuid.UUID) (ApprovableResult, error) {
	return call[ApprovableResult](ctx, c, OpGetApprovalRequestResult, http.MethodPost,
		id("/approval_requests", requestID, "result"), nil, nil)
}

// --- Builds ---

func (c *Client) CreateBuild(ctx context.Context, req CreateBuildRequest) (Build, error) {
	return call[Build](ctx, c, OpCreateBuild, http.MethodPost, "/builds", nil, req)
}

func (c *Client) GetBuild(ctx context.Context, buildID uuid.UUID) (Build, error) {
	return call[Build](ctx, c, OpGetBuild, http.MethodGet, id("/builds", buildID), nil, nil)
}

func (c *Client) GetAllBuilds(ctx context.Context, params GetAllBuildsParams) (GetAllBuildsResponse, error) {
	return call[GetAllBuildsResponse](ctx, c, OpGetAllBuilds, http.MethodGet, "/builds", params.query().Values(), nil)
}

func (c *Client) UpdateBuild(ctx context.Context, buildID uuid.UUID, req BuildUpdateRequest) (Build, error) {
	return call[Build](ctx, c, OpUpdateBuild, http.MethodPatch, id("/builds", buildID), nil, req)
}

func (c *Client) DeleteBuild(ctx context.Context, buildID uuid.UUID) error {
	return c.exec(ctx, OpDeleteBuild, http.MethodDelete, id("/builds", buildID), nil)
}

func (c *Client) ConvertAppBuild(ctx context.Context, req ConvertAppBuildRequest) (Build, error) {
	return call[Build](ctx, c, OpConvertAppBuild, http.MethodPost, "/builds/convert-app", nil, req)
}

// --- Certificates ---

func (c *Client) GetCertificate(ctx context.Context, certID uuid.UUID) (Certificate, error) {
	return call[Certificate](ctx, c, OpGetCertificate, http.MethodGet, id("/certificates", certID), nil, nil)
}

func (c *Client) NewCertificate(ctx context.Context, req NewCertificateRequest) (TaskResult, error) {
	return call[TaskResult](ctx, c, OpNewCertificate, http.MethodPost, "/certificates", nil, req)
}

// --- Nodes ---

func (c *Client) GetAllNodes(ctx context.Context, params GetAllNodesParams) (GetAllNodesResponse, error) {
	return call[GetAllNodesResponse](ctx, c, OpGetAllNodes, http.MethodGet, "/nodes", params.query().Values(), nil)
}

func (c *Client) GetNode(ctx context.Context, nodeID uuid.UUID) (Node, error) {
	return call[Node](ctx, c, OpGetNode, http.MethodGet, id("/nodes", nodeID), nil, nil)
}

func (c *Client) UpdateNode(ctx context.Context, nodeID uuid.UUID, req NodeUpdateRequest) (Node, error) {
	return call[Node](ctx, c, OpUpdateNode, http.MethodPatch, id("/nodes", nodeID), nil, req)
}

func (c *Client) DeactivateNode(ctx context.Context, nodeID uuid.UUID) error {
	return c.exec(ctx, OpDeactivateNode, http.MethodPost, id("/nodes", nodeID, "deactivate"), nil)
}

func (c *Client) ProvisionNode(ctx context.Context, req NodeProvisionRequest) (TaskResult, error) {
	return call[TaskResult](ctx, c, OpProvisionNode, http.MethodPost, "/nodes", nil, req)
}

func (c *Client) GetNodeCertificate(ctx context.Context, nodeID uuid.UUID) (Certificate, error) {
	return call[Certificate](ctx, c, OpGetNodeCertificate, http.MethodGet, id("/nodes", nodeID, "certificate"), nil, nil)
}

// --- Registry ---

func (c *Client) CreateRegistry(ctx context.Context, req RegistryRequest) (Registry, error) {
	return call[Registry](ctx, c, OpCreateRegistry, http.MethodPost, "/registry", nil, req)
}

func (c *Client) GetRegistry(ctx context.Context, registryID uuid.UUID) (Registry, error) {
	return call[Registry](ctx, c, OpGetRegistry, http.MethodGet, id("/registry", registryID), nil, nil)
}

func (c *Client) GetAllRegistries(ctx context.Context) ([]Registry, error) {
	return call[[]Registry](ctx, c, OpGetAllRegistries, http.MethodGet, "/registry", nil, nil)
}

func (c *Client) GetRegistryForImage(ctx context.Context, imageName string) (Registry, error) {
	query := wire.NewQuery().Set("image_name", &imageName).Values()
	return call[Registry](ctx, c, OpGetRegistryForImage, http.MethodGet, "/registry/image", query, nil)
}

func (c *Client) UpdateRegistry(ctx context.Context, registryID uuid.UUID, req UpdateRegistryRequest) (Registry, error) {
	return call[Registry](ctx, c, OpUpdateRegistry, http.MethodPatch, id("/registry", registryID), nil, req)
}

func (c *Client) DeleteRegistry(ctx context.Context, registryID uuid.UUID) error {
	return c.exec(ctx, OpDeleteRegistry, http.MethodDelete, id("/registry", registryID), nil)
}

// --- Tasks ---

func (c *Client) GetAllTasks(ctx context.Context, params GetAllTasksParams) (GetAllTasksResponse, error) {
	return call[GetAllTasksResponse](ctx, c, OpGetAllTasks, http.MethodGet, "/tasks", params.query().Values(), nil)
}

func (c *Client) GetTask(ctx context.Context, taskID uuid.UUID) (Task, error) {
	return call[Task](ctx, c, OpGetTask, http.MethodGet, id("/tasks", taskID), nil, nil)
}

func (c *Client) GetTaskStatus(ctx context.Context, taskID uuid.UUID) (TaskResult, error) {
	return call[TaskResult](ctx, c, OpGetTaskStatus, http.MethodGet, id("/tasks/status", taskID), nil, nil)
}

func (c *Client) UpdateTask(ctx context.Context, taskID uuid.UUID, req TaskUpdateRequest) error {
	return c.exec(ctx, OpUpdateTask, http.MethodPatch, id("/tasks", taskID), req)
}

// --- Users ---

func (c *Client) CreateUser(ctx context.Context, req SignupRequest) (User, error) {
	return call[User](ctx, c, OpCreateUser, http.MethodPost, "/users", nil, req)
}

func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (User, error) {
	return call[User](ctx, c, OpGetUser, http.MethodGet, id("/users", userID), nil, nil)
}

func (c *Client) GetAllUsers(ctx context.Context, params GetAllUsersParams) (GetAllUsersResponse, error) {
	return call[GetAllUsersResponse](ctx, c, OpGetAllUsers, http.MethodGet, "/users", params.query().Values(), nil)
}

func (c *Client) GetLoggedInUser(ctx context.Context) (User, error) {
	return call[User](ctx, c, OpGetLoggedInUser, http.MethodGet, "/users/current", nil, nil)
}

func (c *Client) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (User, error) {
	return call[User](ctx, c, OpUpdateUser, http.MethodPatch, id("/users", userID), nil, req)
}

func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.exec(ctx, OpDeleteUser, http.MethodDelete, id("/users", userID), nil)
}

func (c *Client) ChangePassword(ctx context.Context, req PasswordChangeRequest) error {
	return c.exec(ctx, OpChangePassword, http.MethodPost, "/users/change_password", req)
}

// --- Workflow graphs ---

const graphsPath = "/workflows/draft/graphs"

func (c *Client) CreateWorkflowGraph(ctx context.Context, req CreateWorkflowGraph) (WorkflowGraph, error) {
	return call[WorkflowGraph](ctx, c, OpCreateWorkflowGraph, http.MethodPost, graphsPath, nil, req)
}

func (c *Client) GetWorkflowGraph(ctx context.Context, graphID uuid.UUID) (WorkflowGraph, error) {
	return call[WorkflowGraph](ctx, c, OpGetWorkflowGraph, http.MethodGet, id(graphsPath, graphID), nil, nil)
}

func (c *Client) GetAllWorkflowGraphs(ctx context.Context, params GetAllWorkflowGraphsParams) (GetAllWorkflowGraphsResponse, error) {
	return call[GetAllWorkflowGraphsResponse](ctx, c, OpGetAllWorkflowGraphs, http.MethodGet,
		graphsPath, params.query().Values(), nil)
}

func (c *Client) UpdateWorkflowGraph(ctx context.Context, graphID uuid.UUID, req UpdateWorkflowGraph) (WorkflowGraph, error) {
	return call[WorkflowGraph](ctx, c, OpUpdateWorkflowGraph, http.MethodPut, id(graphsPath, graphID), nil, req)
}

func (c *Client) DeleteWorkflowGraph(ctx context.Context, graphID uuid.UUID) error {
	return c.exec(ctx, OpDeleteWorkflowGraph, http.MethodDelete, id(graphsPath, graphID), nil)
}

// --- Zones ---

func (c *Client) GetZone(ctx context.Context, zoneID uuid.UUID) (Zone, error) {
	return call[Zone](ctx, c, OpGetZone, http.MethodGet, id("/zones", zoneID), nil, nil)
}

func (c *Client) GetZones(ctx context.Context) ([]Zone, error) {
	return call[[]Zone](ctx, c, OpGetZones, http.MethodGet, "/zones", nil, nil)
}

func (c *Client) GetZoneJoinToken(ctx context.Context, zoneID uuid.UUID) (ZoneJoinToken, error) {
	return call[ZoneJoinToken](ctx, c, OpGetZoneJoinToken, http.MethodGet, id("/zones", zoneID, "token"), nil, nil)
}
