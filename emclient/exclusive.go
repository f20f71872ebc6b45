// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"context"

	"github.com/google/uuid"

	"github.com/toeirei/emclient/internal/exclusive"
)

type exclusiveAPI struct {
	cell *exclusive.Cell[API]
}

// NewExclusive wraps api so that at most one call runs against it at a
// time. Overlapping calls, including re-entrant ones made from inside api,
// fail immediately with exclusive.ErrInUse.
func NewExclusive(api API) API {
	return &exclusiveAPI{cell: exclusive.New(api)}
}

func (e *exclusiveAPI) Authenticate(ctx context.Context, req AuthRequest) (AuthResponse, error) {
	return exclusive.Do(e.cell, func(a API) (AuthResponse, error) {
		return a.Authenticate(ctx, req)
	})
}

func (e *exclusiveAPI) Logout(ctx context.Context) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.Logout(ctx)
	})
}

func (e *exclusiveAPI) GetManagerVersion(ctx context.Context) (Version, error) {
	return exclusive.Do(e.cell, func(a API) (Version, error) {
		return a.GetManagerVersion(ctx)
	})
}

func (e *exclusiveAPI) CreateAccount(ctx context.Context, req AccountRequest) (Account, error) {
	return exclusive.Do(e.cell, func(a API) (Account, error) {
		return a.CreateAccount(ctx, req)
	})
}

func (e *exclusiveAPI) GetAccount(ctx context.Context, acctID uuid.UUID) (Account, error) {
	return exclusive.Do(e.cell, func(a API) (Account, error) {
		return a.GetAccount(ctx, acctID)
	})
}

func (e *exclusiveAPI) GetAccounts(ctx context.Context) (AccountListResponse, error) {
	return exclusive.Do(e.cell, func(a API) (AccountListResponse, error) {
		return a.GetAccounts(ctx)
	})
}

func (e *exclusiveAPI) UpdateAccount(ctx context.Context, acctID uuid.UUID, req AccountUpdateRequest) (Account, error) {
	return exclusive.Do(e.cell, func(a API) (Account, error) {
		return a.UpdateAccount(ctx, acctID, req)
	})
}

func (e *exclusiveAPI) DeleteAccount(ctx context.Context, acctID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteAccount(ctx, acctID)
	})
}

func (e *exclusiveAPI) SelectAccount(ctx context.Context, acctID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.SelectAccount(ctx, acctID)
	})
}

func (e *exclusiveAPI) AddApplication(ctx context.Context, req AppRequest) (App, error) {
	return exclusive.Do(e.cell, func(a API) (App, error) {
		return a.AddApplication(ctx, req)
	})
}

func (e *exclusiveAPI) GetApp(ctx context.Context, appID uuid.UUID) (App, error) {
	return exclusive.Do(e.cell, func(a API) (App, error) {
		return a.GetApp(ctx, appID)
	})
}

func (e *exclusiveAPI) GetAllApps(ctx context.Context, params GetAllAppsParams) (GetAllAppsResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllAppsResponse, error) {
		return a.GetAllApps(ctx, params)
	})
}

func (e *exclusiveAPI) UpdateApp(ctx context.Context, appID uuid.UUID, req AppBodyUpdateRequest) (App, error) {
	return exclusive.Do(e.cell, func(a API) (App, error) {
		return a.UpdateApp(ctx, appID, req)
	})
}

func (e *exclusiveAPI) DeleteApp(ctx context.Context, appID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteApp(ctx, appID)
	})
}

func (e *exclusiveAPI) GetAppCertificate(ctx context.Context, nodeID, appID uuid.UUID) (Certificate, error) {
	return exclusive.Do(e.cell, func(a API) (Certificate, error) {
		return a.GetAppCertificate(ctx, nodeID, appID)
	})
}

func (e *exclusiveAPI) CreateApplicationConfig(ctx context.Context, req ApplicationConfig) (ApplicationConfigResponse, error) {
	return exclusive.Do(e.cell, func(a API) (ApplicationConfigResponse, error) {
		return a.CreateApplicationConfig(ctx, req)
	})
}

func (e *exclusiveAPI) GetApplicationConfig(ctx context.Context, configID string) (ApplicationConfigResponse, error) {
	return exclusive.Do(e.cell, func(a API) (ApplicationConfigResponse, error) {
		return a.GetApplicationConfig(ctx, configID)
	})
}

func (e *exclusiveAPI) GetAllApplicationConfigs(ctx context.Context, params GetAllApplicationConfigsParams) (GetAllApplicationConfigsResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllApplicationConfigsResponse, error) {
		return a.GetAllApplicationConfigs(ctx, params)
	})
}

func (e *exclusiveAPI) UpdateApplicationConfig(ctx context.Context, configID string, req UpdateApplicationConfigRequest) (ApplicationConfigResponse, error) {
	return exclusive.Do(e.cell, func(a API) (ApplicationConfigResponse, error) {
		return a.UpdateApplicationConfig(ctx, configID, req)
	})
}

func (e *exclusiveAPI) DeleteApplicationConfig(ctx context.Context, configID string) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteApplicationConfig(ctx, configID)
	})
}

func (e *exclusiveAPI) CreateApprovalRequest(ctx context.Context, req ApprovalRequestRequest) (ApprovalRequest, error) {
	return exclusive.Do(e.cell, func(a API) (ApprovalRequest, error) {
		return a.CreateApprovalRequest(ctx, req)
	})
}

func (e *exclusiveAPI) GetApprovalRequest(ctx context.Context, requestID uuid.UUID) (ApprovalRequest, error) {
	return exclusive.Do(e.cell, func(a API) (ApprovalRequest, error) {
		return a.GetApprovalRequest(ctx, requestID)
	})
}

func (e *exclusiveAPI) GetAllApprovalRequests(ctx context.Context, params GetAllApprovalRequestsParams) (GetAllApprovalRequestsResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllApprovalRequestsResponse, error) {
		return a.GetAllApprovalRequests(ctx, params)
	})
}

func (e *exclusiveAPI) Approve(ctx context.Context, requestID uuid.UUID, req ApproveRequest) (ApprovalRequest, error) {
	return exclusive.Do(e.cell, func(a API) (ApprovalRequest, error) {
		return a.Approve(ctx, requestID, req)
	})
}

func (e *exclusiveAPI) Deny(ctx context.Context, requestID uuid.UUID, req DenyRequest) (ApprovalRequest, error) {
	return exclusive.Do(e.cell, func(a API) (ApprovalRequest, error) {
		return a.Deny(ctx, requestID, req)
	})
}

func (e *exclusiveAPI) DeleteApprovalRequest(ctx context.Context, requestID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteApprovalRequest(ctx, requestID)
	})
}

func (e *exclusiveAPI) GetApprovalRequestResult(ctx context.Context, requestID uuid.UUID) (ApprovableResult, error) {
	return exclusive.Do(e.cell, func(a API) (ApprovableResult, error) {
		return a.GetApprovalRequestResult(ctx, requestID)
	})
}

func (e *exclusiveAPI) CreateBuild(ctx context.Context, req CreateBuildRequest) (Build, error) {
	return exclusive.Do(e.cell, func(a API) (Build, error) {
		return a.CreateBuild(ctx, req)
	})
}

func (e *exclusiveAPI) GetBuild(ctx context.Context, buildID uuid.UUID) (Build, error) {
	return exclusive.Do(e.cell, func(a API) (Build, error) {
		return a.GetBuild(ctx, buildID)
	})
}

func (e *exclusiveAPI) GetAllBuilds(ctx context.Context, params GetAllBuildsParams) (GetAllBuildsResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllBuildsResponse, error) {
		return a.GetAllBuilds(ctx, params)
	})
}

func (e *exclusiveAPI) UpdateBuild(ctx context.Context, buildID uuid.UUID, req BuildUpdateRequest) (Build, error) {
	return exclusive.Do(e.cell, func(a API) (Build, error) {
		return a.UpdateBuild(ctx, buildID, req)
	})
}

func (e *exclusiveAPI) DeleteBuild(ctx context.Context, buildID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteBuild(ctx, buildID)
	})
}

func (e *exclusiveAPI) ConvertAppBuild(ctx context.Context, req ConvertAppBuildRequest) (Build, error) {
	return exclusive.Do(e.cell, func(a API) (Build, error) {
		return a.ConvertAppBuild(ctx, req)
	})
}

func (e *exclusiveAPI) GetCertificate(ctx context.Context, certID uuid.UUID) (Certificate, error) {
	return exclusive.Do(e.cell, func(a API) (Certificate, error) {
		return a.GetCertificate(ctx, certID)
	})
}

func (e *exclusiveAPI) NewCertificate(ctx context.Context, req NewCertificateRequest) (TaskResult, error) {
	return exclusive.Do(e.cell, func(a API) (TaskResult, error) {
		return a.NewCertificate(ctx, req)
	})
}

func (e *exclusiveAPI) GetAllNodes(ctx context.Context, params GetAllNodesParams) (GetAllNodesResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllNodesResponse, error) {
		return a.GetAllNodes(ctx, params)
	})
}

func (e *exclusiveAPI) GetNode(ctx context.Context, nodeID uuid.UUID) (Node, error) {
	return exclusive.Do(e.cell, func(a API) (Node, error) {
		return a.GetNode(ctx, nodeID)
	})
}

func (e *exclusiveAPI) UpdateNode(ctx context.Context, nodeID uuid.UUID, req NodeUpdateRequest) (Node, error) {
	return exclusive.Do(e.cell, func(a API) (Node, error) {
		return a.UpdateNode(ctx, nodeID, req)
	})
}

func (e *exclusiveAPI) DeactivateNode(ctx context.Context, nodeID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeactivateNode(ctx, nodeID)
	})
}

func (e *exclusiveAPI) ProvisionNode(ctx context.Context, req NodeProvisionRequest) (TaskResult, error) {
	return exclusive.Do(e.cell, func(a API) (TaskResult, error) {
		return a.ProvisionNode(ctx, req)
	})
}

func (e *exclusiveAPI) GetNodeCertificate(ctx context.Context, nodeID uuid.UUID) (Certificate, error) {
	return exclusive.Do(e.cell, func(a API) (Certificate, error) {
		return a.GetNodeCertificate(ctx, nodeID)
	})
}

func (e *exclusiveAPI) CreateRegistry(ctx context.Context, req RegistryRequest) (Registry, error) {
	return exclusive.Do(e.cell, func(a API) (Registry, error) {
		return a.CreateRegistry(ctx, req)
	})
}

func (e *exclusiveAPI) GetRegistry(ctx context.Context, registryID uuid.UUID) (Registry, error) {
	return exclusive.Do(e.cell, func(a API) (Registry, error) {
		return a.GetRegistry(ctx, registryID)
	})
}

func (e *exclusiveAPI) GetAllRegistries(ctx context.Context) ([]Registry, error) {
	return exclusive.Do(e.cell, func(a API) ([]Registry, error) {
		return a.GetAllRegistries(ctx)
	})
}

func (e *exclusiveAPI) GetRegistryForImage(ctx context.Context, imageName string) (Registry, error) {
	return exclusive.Do(e.cell, func(a API) (Registry, error) {
		return a.GetRegistryForImage(ctx, imageName)
	})
}

func (e *exclusiveAPI) UpdateRegistry(ctx context.Context, registryID uuid.UUID, req UpdateRegistryRequest) (Registry, error) {
	return exclusive.Do(e.cell, func(a API) (Registry, error) {
		return a.UpdateRegistry(ctx, registryID, req)
	})
}

func (e *exclusiveAPI) DeleteRegistry(ctx context.Context, registryID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteRegistry(ctx, registryID)
	})
}

func (e *exclusiveAPI) GetAllTasks(ctx context.Context, params GetAllTasksParams) (GetAllTasksResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllTasksResponse, error) {
		return a.GetAllTasks(ctx, params)
	})
}

func (e *exclusiveAPI) GetTask(ctx context.Context, taskID uuid.UUID) (Task, error) {
	return exclusive.Do(e.cell, func(a API) (Task, error) {
		return a.GetTask(ctx, taskID)
	})
}

func (e *exclusiveAPI) GetTaskStatus(ctx context.Context, taskID uuid.UUID) (TaskResult, error) {
	return exclusive.Do(e.cell, func(a API) (TaskResult, error) {
		return a.GetTaskStatus(ctx, taskID)
	})
}

func (e *exclusiveAPI) UpdateTask(ctx context.Context, taskID uuid.UUID, req TaskUpdateRequest) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.UpdateTask(ctx, taskID, req)
	})
}

func (e *exclusiveAPI) CreateUser(ctx context.Context, req SignupRequest) (User, error) {
	return exclusive.Do(e.cell, func(a API) (User, error) {
		return a.CreateUser(ctx, req)
	})
}

func (e *exclusiveAPI) GetUser(ctx context.Context, userID uuid.UUID) (User, error) {
	return exclusive.Do(e.cell, func(a API) (User, error) {
		return a.GetUser(ctx, userID)
	})
}

func (e *exclusiveAPI) GetAllUsers(ctx context.Context, params GetAllUsersParams) (GetAllUsersResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllUsersResponse, error) {
		return a.GetAllUsers(ctx, params)
	})
}

func (e *exclusiveAPI) GetLoggedInUser(ctx context.Context) (User, error) {
	return exclusive.Do(e.cell, func(a API) (User, error) {
		return a.GetLoggedInUser(ctx)
	})
}

func (e *exclusiveAPI) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (User, error) {
	return exclusive.Do(e.cell, func(a API) (User, error) {
		return a.UpdateUser(ctx, userID, req)
	})
}

func (e *exclusiveAPI) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteUser(ctx, userID)
	})
}

func (e *exclusiveAPI) ChangePassword(ctx context.Context, req PasswordChangeRequest) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.ChangePassword(ctx, req)
	})
}

func (e *exclusiveAPI) CreateWorkflowGraph(ctx context.Context, req CreateWorkflowGraph) (WorkflowGraph, error) {
	return exclusive.Do(e.cell, func(a API) (WorkflowGraph, error) {
		return a.CreateWorkflowGraph(ctx, req)
	})
}

func (e *exclusiveAPI) GetWorkflowGraph(ctx context.Context, graphID uuid.UUID) (WorkflowGraph, error) {
	return exclusive.Do(e.cell, func(a API) (WorkflowGraph, error) {
		return a.GetWorkflowGraph(ctx, graphID)
	})
}

func (e *exclusiveAPI) GetAllWorkflowGraphs(ctx context.Context, params GetAllWorkflowGraphsParams) (GetAllWorkflowGraphsResponse, error) {
	return exclusive.Do(e.cell, func(a API) (GetAllWorkflowGraphsResponse, error) {
		return a.GetAllWorkflowGraphs(ctx, params)
	})
}

func (e *exclusiveAPI) UpdateWorkflowGraph(ctx context.Context, graphID uuid.UUID, req UpdateWorkflowGraph) (WorkflowGraph, error) {
	return exclusive.Do(e.cell, func(a API) (WorkflowGraph, error) {
		return a.UpdateWorkflowGraph(ctx, graphID, req)
	})
}

func (e *exclusiveAPI) DeleteWorkflowGraph(ctx context.Context, graphID uuid.UUID) error {
	return exclusive.Run(e.cell, func(a API) error {
		return a.DeleteWorkflowGraph(ctx, graphID)
	})
}

func (e *exclusiveAPI) GetZone(ctx context.Context, zoneID uuid.UUID) (Zone, error) {
	return exclusive.Do(e.cell, func(a API) (Zone, error) {
		return a.GetZone(ctx, zoneID)
	})
}

func (e *exclusiveAPI) GetZones(ctx context.Context) ([]Zone, error) {
	return exclusive.Do(e.cell, func(a API) ([]Zone, error) {
		return a.GetZones(ctx)
	})
}

func (e *exclusiveAPI) GetZoneJoinToken(ctx context.Context, zoneID uuid.UUID) (ZoneJoinToken, error) {
	return exclusive.Do(e.cell, func(a API) (ZoneJoinToken, error) {
		return a.GetZoneJoinToken(ctx, zoneID)
	})
}
