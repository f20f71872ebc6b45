// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"context"

	"github.com/google/uuid"
)

// AuthAPI exchanges user credentials for a bearer token.
type AuthAPI interface {
	Authenticate(ctx context.Context, req AuthRequest) (AuthResponse, error)
	// Logout invalidates the token the call was made with.
	Logout(ctx context.Context) error
}

type SystemAPI interface {
	GetManagerVersion(ctx context.Context) (Version, error)
}

type AccountsAPI interface {
	CreateAccount(ctx context.Context, req AccountRequest) (Account, error)
	GetAccount(ctx context.Context, acctID uuid.UUID) (Account, error)
	// GetAccounts lists the accounts the current user belongs to.
	GetAccounts(ctx context.Context) (AccountListResponse, error)
	UpdateAccount(ctx context.Context, acctID uuid.UUID, req AccountUpdateRequest) (Account, error)
	DeleteAccount(ctx context.Context, acctID uuid.UUID) error
	// SelectAccount makes acctID the account later calls act on.
	SelectAccount(ctx context.Context, acctID uuid.UUID) error
}

type AppsAPI interface {
	AddApplication(ctx context.Context, req AppRequest) (App, error)
	GetApp(ctx context.Context, appID uuid.UUID) (App, error)
	GetAllApps(ctx context.Context, params GetAllAppsParams) (GetAllAppsResponse, error)
	UpdateApp(ctx context.Context, appID uuid.UUID, req AppBodyUpdateRequest) (App, error)
	DeleteApp(ctx context.Context, appID uuid.UUID) error
	// GetAppCertificate returns the certificate issued to appID running on nodeID.
	GetAppCertificate(ctx context.Context, nodeID, appID uuid.UUID) (Certificate, error)
}

// AppConfigsAPI manages application configurations. Configuration ids are
// opaque strings rather than UUIDs.
type AppConfigsAPI interface {
	CreateApplicationConfig(ctx context.Context, req ApplicationConfig) (ApplicationConfigResponse, error)
	GetApplicationConfig(ctx context.Context, configID string) (ApplicationConfigResponse, error)
	GetAllApplicationConfigs(ctx context.Context, params GetAllApplicationConfigsParams) (GetAllApplicationConfigsResponse, error)
	UpdateApplicationConfig(ctx context.Context, configID string, req UpdateApplicationConfigRequest) (ApplicationConfigResponse, error)
	DeleteApplicationConfig(ctx context.Context, configID string) error
}

// ApprovalRequestsAPI covers operations that need sign-off from other
// account members before the manager runs them.
type ApprovalRequestsAPI interface {
	CreateApprovalRequest(ctx context.Context, req ApprovalRequestRequest) (ApprovalRequest, error)
	GetApprovalRequest(ctx context.Context, requestID uuid.UUID) (ApprovalRequest, error)
	GetAllApprovalRequests(ctx context.Context, params GetAllApprovalRequestsParams) (GetAllApprovalRequestsResponse, error)
	Approve(ctx context.Context, requestID uuid.UUID, req ApproveRequest) (ApprovalRequest, error)
	Deny(ctx context.Context, requestID uuid.UUID, req DenyRequest) (ApprovalRequest, error)
	DeleteApprovalRequest(ctx context.Context, requestID uuid.UUID) error
	// GetApprovalRequestResult returns the outcome of an approved request.
	GetApprovalRequestResult(ctx context.Context, requestID uuid.UUID) (ApprovableResult, error)
}

type BuildsAPI interface {
	CreateBuild(ctx context.Context, req CreateBuildRequest) (Build, error)
	GetBuild(ctx context.Context, buildID uuid.UUID) (Build, error)
	GetAllBuilds(ctx context.Context, params GetAllBuildsParams) (GetAllBuildsResponse, error)
	UpdateBuild(ctx context.Context, buildID uuid.UUID, req BuildUpdateRequest) (Build, error)
	DeleteBuild(ctx context.Context, buildID uuid.UUID) error
	ConvertAppBuild(ctx context.Context, req ConvertAppBuildRequest) (Build, error)
}

type CertificatesAPI interface {
	GetCertificate(ctx context.Context, certID uuid.UUID) (Certificate, error)
	// NewCertificate starts an issuance task; the certificate is available
	// once the task completes.
	NewCertificate(ctx context.Context, req NewCertificateRequest) (TaskResult, error)
}

type NodesAPI interface {
	GetAllNodes(ctx context.Context, params GetAllNodesParams) (GetAllNodesResponse, error)
	GetNode(ctx context.Context, nodeID uuid.UUID) (Node, error)
	UpdateNode(ctx context.Context, nodeID uuid.UUID, req NodeUpdateRequest) (Node, error)
	DeactivateNode(ctx context.Context, nodeID uuid.UUID) error
	ProvisionNode(ctx context.Context, req NodeProvisionRequest) (TaskResult, error)
	GetNodeCertificate(ctx context.Context, nodeID uuid.UUID) (Certificate, error)
}

// RegistryAPI manages the docker registries the manager pulls from.
type RegistryAPI interface {
	CreateRegistry(ctx context.Context, req RegistryRequest) (Registry, error)
	GetRegistry(ctx context.Context, registryID uuid.UUID) (Registry, error)
	GetAllRegistries(ctx context.Context) ([]Registry, error)
	GetRegistryForImage(ctx context.Context, imageName string) (Registry, error)
	UpdateRegistry(ctx context.Context, registryID uuid.UUID, req UpdateRegistryRequest) (Registry, error)
	DeleteRegistry(ctx context.Context, registryID uuid.UUID) error
}

type TasksAPI interface {
	GetAllTasks(ctx context.Context, params GetAllTasksParams) (GetAllTasksResponse, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (Task, error)
	GetTaskStatus(ctx context.Context, taskID uuid.UUID) (TaskResult, error)
	// UpdateTask approves or denies a task waiting on the current user.
	UpdateTask(ctx context.Context, taskID uuid.UUID, req TaskUpdateRequest) error
}

type UsersAPI interface {
	CreateUser(ctx context.Context, req SignupRequest) (User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (User, error)
	GetAllUsers(ctx context.Context, params GetAllUsersParams) (GetAllUsersResponse, error)
	GetLoggedInUser(ctx context.Context) (User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, req PasswordChangeRequest) error
}

// WorkflowGraphsAPI manages draft workflow graphs.
type WorkflowGraphsAPI interface {
	CreateWorkflowGraph(ctx context.Context, req CreateWorkflowGraph) (WorkflowGraph, error)
	GetWorkflowGraph(ctx context.Context, graphID uuid.UUID) (WorkflowGraph, error)
	GetAllWorkflowGraphs(ctx context.Context, params GetAllWorkflowGraphsParams) (GetAllWorkflowGraphsResponse, error)
	UpdateWorkflowGraph(ctx context.Context, graphID uuid.UUID, req UpdateWorkflowGraph) (WorkflowGraph, error)
	DeleteWorkflowGraph(ctx context.Context, graphID uuid.UUID) error
}

type ZonesAPI interface {
	GetZone(ctx context.Context, zoneID uuid.UUID) (Zone, error)
	GetZones(ctx context.Context) ([]Zone, error)
	GetZoneJoinToken(ctx context.Context, zoneID uuid.UUID) (ZoneJoinToken, error)
}

// API is the full manager surface.
type API interface {
	AuthAPI
	SystemAPI
	AccountsAPI
	AppsAPI
	AppConfigsAPI
	ApprovalRequestsAPI
	BuildsAPI
	CertificatesAPI
	NodesAPI
	RegistryAPI
	TasksAPI
	UsersAPI
	WorkflowGraphsAPI
	ZonesAPI
}

// Composite builds an API out of one implementation per resource area.
// Every API method is promoted from the field for its area.
type Composite struct {
	AuthAPI
	SystemAPI
	AccountsAPI
	AppsAPI
	AppConfigsAPI
	ApprovalRequestsAPI
	BuildsAPI
	CertificatesAPI
	NodesAPI
	RegistryAPI
	TasksAPI
	UsersAPI
	WorkflowGraphsAPI
	ZonesAPI
}

var _ API = (*Composite)(nil)

// Compose returns a Composite with every area served by api.
func Compose(api API) *Composite {
	return &Composite{
		AuthAPI:             api,
		SystemAPI:           api,
		AccountsAPI:         api,
		AppsAPI:             api,
		AppConfigsAPI:       api,
		ApprovalRequestsAPI: api,
		BuildsAPI:           api,
		CertificatesAPI:     api,
		NodesAPI:            api,
		RegistryAPI:         api,
		TasksAPI:            api,
		UsersAPI:            api,
		WorkflowGraphsAPI:   api,
		ZonesAPI:            api,
	}
}
