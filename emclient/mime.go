// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import "sort"

// Operation identifies one manager API call.
type Operation string

const (
	// Auth
	OpAuthenticate Operation = "Authenticate"
	OpLogout       Operation = "Logout"

	// System
	OpGetManagerVersion Operation = "GetManagerVersion"

	// Accounts
	OpCreateAccount Operation = "CreateAccount"
	OpGetAccount    Operation = "GetAccount"
	OpGetAccounts   Operation = "GetAccounts"
	OpUpdateAccount Operation = "UpdateAccount"
	OpDeleteAccount Operation = "DeleteAccount"
	OpSelectAccount Operation = "SelectAccount"

	// Apps
	OpAddApplication    Operation = "AddApplication"
	OpGetApp            Operation = "GetApp"
	OpGetAllApps        Operation = "GetAllApps"
	OpUpdateApp         Operation = "UpdateApp"
	OpDeleteApp         Operation = "DeleteApp"
	OpGetAppCertificate Operation = "GetAppCertificate"

	// AppConfigs
	OpCreateApplicationConfig  Operation = "CreateApplicationConfig"
	OpGetApplicationConfig     Operation = "GetApplicationConfig"
	OpGetAllApplicationConfigs Operation = "GetAllApplicationConfigs"
	OpUpdateApplicationConfig  Operation = "UpdateApplicationConfig"
	OpDeleteApplicationConfig  Operation = "DeleteApplicationConfig"

	// ApprovalRequests
	OpCreateApprovalRequest    Operation = "CreateApprovalRequest"
	OpGetApprovalRequest       Operation = "GetApprovalRequest"
	OpGetAllApprovalRequests   Operation = "GetAllApprovalRequests"
	OpApprove                  Operation = "Approve"
	OpDeny                     Operation = "Deny"
	OpDeleteApprovalRequest    Operation = "DeleteApprovalRequest"
	OpGetApprovalRequestResult Operation = "GetApprovalRequestResult"

	// Builds
	OpCreateBuild     Operation = "CreateBuild"
	OpGetBuild        Operation = "GetBuild"
	OpGetAllBuilds    Operation = "GetAllBuilds"
	OpUpdateBuild     Operation = "UpdateBuild"
	OpDeleteBuild     Operation = "DeleteBuild"
	OpConvertAppBuild Operation = "ConvertAppBuild"

	// Certificates
	OpGetCertificate Operation = "GetCertificate"
	OpNewCertificate Operation = "NewCertificate"

	// Nodes
	OpGetAllNodes        Operation = "GetAllNodes"
	OpGetNode            Operation = "GetNode"
	OpUpdateNode         Operation = "UpdateNode"
	OpDeactivateNode     Operation = "DeactivateNode"
	OpProvisionNode      Operation = "ProvisionNode"
	OpGetNodeCertificate Operation = "GetNodeCertificate"

	// Registry
	OpCreateRegistry      Operation = "CreateRegistry"
	OpGetRegistry         Operation = "GetRegistry"
	OpGetAllRegistries    Operation = "GetAllRegistries"
	OpGetRegistryForImage Operation = "GetRegistryForImage"
	OpUpdateRegistry      Operation = "UpdateRegistry"
	OpDeleteRegistry      Operation = "DeleteRegistry"

	// Tasks
	OpGetAllTasks   Operation = "GetAllTasks"
	OpGetTask       Operation = "GetTask"
	OpGetTaskStatus Operation = "GetTaskStatus"
	OpUpdateTask    Operation = "UpdateTask"

	// Users
	OpCreateUser      Operation = "CreateUser"
	OpGetUser         Operation = "GetUser"
	OpGetAllUsers     Operation = "GetAllUsers"
	OpGetLoggedInUser Operation = "GetLoggedInUser"
	OpUpdateUser      Operation = "UpdateUser"
	OpDeleteUser      Operation = "DeleteUser"
	OpChangePassword  Operation = "ChangePassword"

	// WorkflowGraphs
	OpCreateWorkflowGraph  Operation = "CreateWorkflowGraph"
	OpGetWorkflowGraph     Operation = "GetWorkflowGraph"
	OpGetAllWorkflowGraphs Operation = "GetAllWorkflowGraphs"
	OpUpdateWorkflowGraph  Operation = "UpdateWorkflowGraph"
	OpDeleteWorkflowGraph  Operation = "DeleteWorkflowGraph"

	// Zones
	OpGetZone          Operation = "GetZone"
	OpGetZones         Operation = "GetZones"
	OpGetZoneJoinToken Operation = "GetZoneJoinToken"
)

const jsonContentType = "application/json"

// Only operations with a request body have a request content type.
var requestContentTypes = map[Operation]string{
	OpAuthenticate:            jsonContentType,
	OpCreateAccount:           jsonContentType,
	OpUpdateAccount:           jsonContentType,
	OpAddApplication:          jsonContentType,
	OpUpdateApp:               jsonContentType,
	OpCreateApplicationConfig: jsonContentType,
	OpUpdateApplicationConfig: jsonContentType,
	OpCreateApprovalRequest:   jsonContentType,
	OpApprove:                 jsonContentType,
	OpDeny:                    jsonContentType,
	OpCreateBuild:             jsonContentType,
	OpUpdateBuild:             jsonContentType,
	OpConvertAppBuild:         jsonContentType,
	OpNewCertificate:          jsonContentType,
	OpUpdateNode:              jsonContentType,
	OpProvisionNode:           jsonContentType,
	OpCreateRegistry:          jsonContentType,
	OpUpdateRegistry:          jsonContentType,
	OpUpdateTask:              jsonContentType,
	OpCreateUser:              jsonContentType,
	OpUpdateUser:              jsonContentType,
	OpChangePassword:          jsonContentType,
	OpCreateWorkflowGraph:     jsonContentType,
	OpUpdateWorkflowGraph:     jsonContentType,
}

var responseContentTypes = map[Operation]string{
	OpAuthenticate:             jsonContentType,
	OpLogout:                   jsonContentType,
	OpGetManagerVersion:        jsonContentType,
	OpCreateAccount:            jsonContentType,
	OpGetAccount:               jsonContentType,
	OpGetAccounts:              jsonContentType,
	OpUpdateAccount:            jsonContentType,
	OpDeleteAccount:            jsonContentType,
	OpSelectAccount:            jsonContentType,
	OpAddApplication:           jsonContentType,
	OpGetApp:                   jsonContentType,
	OpGetAllApps:               jsonContentType,
	OpUpdateApp:                jsonContentType,
	OpDeleteApp:                jsonContentType,
	OpGetAppCertificate:        jsonContentType,
	OpCreateApplicationConfig:  jsonContentType,
	OpGetApplicationConfig:     jsonContentType,
	OpGetAllApplicationConfigs: jsonContentType,
	OpUpdateApplicationConfig:  jsonContentType,
	OpDeleteApplicationConfig:  jsonContentType,
	OpCreateApprovalRequest:    jsonContentType,
	OpGetApprovalRequest:       jsonContentType,
	OpGetAllApprovalRequests:   jsonContentType,
	OpApprove:                  jsonContentType,
	OpDeny:                     jsonContentType,
	OpDeleteApprovalRequest:    jsonContentType,
	OpGetApprovalRequestResult: jsonContentType,
	OpCreateBuild:              jsonContentType,
	OpGetBuild:                 jsonContentType,
	OpGetAllBuilds:             jsonContentType,
	OpUpdateBuild:              jsonContentType,
	OpDeleteBuild:              jsonContentType,
	OpConvertAppBuild:          jsonContentType,
	OpGetCertificate:           jsonContentType,
	OpNewCertificate:           jsonContentType,
	OpGetAllNodes:              jsonContentType,
	OpGetNode:                  jsonContentType,
	OpUpdateNode:               jsonContentType,
	OpDeactivateNode:           jsonContentType,
	OpProvisionNode:            jsonContentType,
	OpGetNodeCertificate:       jsonContentType,
	OpCreateRegistry:           jsonContentType,
	OpGetRegistry:              jsonContentType,
	OpGetAllRegistries:         jsonContentType,
	OpGetRegistryForImage:      jsonContentType,
	OpUpdateRegistry:           jsonContentType,
	OpDeleteRegistry:           jsonContentType,
	OpGetAllTasks:              jsonContentType,
	OpGetTask:                  jsonContentType,
	OpGetTaskStatus:            jsonContentType,
	OpUpdateTask:               jsonContentType,
	OpCreateUser:               jsonContentType,
	OpGetUser:                  jsonContentType,
	OpGetAllUsers:              jsonContentType,
	OpGetLoggedInUser:          jsonContentType,
	OpUpdateUser:               jsonContentType,
	OpDeleteUser:               jsonContentType,
	OpChangePassword:           jsonContentType,
	OpCreateWorkflowGraph:      jsonContentType,
	OpGetWorkflowGraph:         jsonContentType,
	OpGetAllWorkflowGraphs:     jsonContentType,
	OpUpdateWorkflowGraph:      jsonContentType,
	OpDeleteWorkflowGraph:      jsonContentType,
	OpGetZone:                  jsonContentType,
	OpGetZones:                 jsonContentType,
	OpGetZoneJoinToken:         jsonContentType,
}

// RequestContentType returns the content type of op's request body.
func RequestContentType(op Operation) (string, bool) {
	ct, ok := requestContentTypes[op]
	return ct, ok
}

// ResponseContentType returns the content type of op's response body.
// Operations without a response body still declare JSON so that error
// payloads are negotiated the same way.
func ResponseContentType(op Operation) (string, bool) {
	ct, ok := responseContentTypes[op]
	return ct, ok
}

// Operations lists every known operation in lexical order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(responseContentTypes))
	for op := range responseContentTypes {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
