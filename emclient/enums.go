// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import "github.com/toeirei/emclient/internal/wire"

// TaskStatusType is the state of a manager task.
type TaskStatusType string

const (
	TaskStatusInProgress       TaskStatusType = "INPROGRESS"
	TaskStatusFailed           TaskStatusType = "FAILED"
	TaskStatusSuccess          TaskStatusType = "SUCCESS"
	TaskStatusDenied           TaskStatusType = "DENIED"
	TaskStatusPendingWhitelist TaskStatusType = "PENDING_WHITELIST"
)

var taskStatusTypes = []TaskStatusType{
	TaskStatusInProgress, TaskStatusFailed, TaskStatusSuccess, TaskStatusDenied, TaskStatusPendingWhitelist,
}

func ParseTaskStatusType(s string) (TaskStatusType, error) { return wire.ParseEnum(s, taskStatusTypes) }
func (v TaskStatusType) String() string                    { return string(v) }
func (v TaskStatusType) MarshalText() ([]byte, error)      { return wire.MarshalEnum(v, taskStatusTypes) }
func (v *TaskStatusType) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, taskStatusTypes, v)
}

// TaskType says what a task asks the manager to approve.
type TaskType string

const (
	TaskTypeNodeAttestation     TaskType = "NODE_ATTESTATION"
	TaskTypeCertificateIssuance TaskType = "CERTIFICATE_ISSUANCE"
	TaskTypeBuildWhitelist      TaskType = "BUILD_WHITELIST"
	TaskTypeDomainWhitelist     TaskType = "DOMAIN_WHITELIST"
)

var taskTypes = []TaskType{
	TaskTypeNodeAttestation, TaskTypeCertificateIssuance, TaskTypeBuildWhitelist, TaskTypeDomainWhitelist,
}

func ParseTaskType(s string) (TaskType, error) { return wire.ParseEnum(s, taskTypes) }
func (v TaskType) String() string              { return string(v) }
func (v TaskType) MarshalText() ([]byte, error) {
	return wire.MarshalEnum(v, taskTypes)
}
func (v *TaskType) UnmarshalText(text []byte) error { return wire.UnmarshalEnum(text, taskTypes, v) }

type NodeStatusType string

const (
	NodeStatusRunning     NodeStatusType = "RUNNING"
	NodeStatusStopped     NodeStatusType = "STOPPED"
	NodeStatusFailed      NodeStatusType = "FAILED"
	NodeStatusDeactivated NodeStatusType = "DEACTIVATED"
	NodeStatusInProgress  NodeStatusType = "INPROGRESS"
)

var nodeStatusTypes = []NodeStatusType{
	NodeStatusRunning, NodeStatusStopped, NodeStatusFailed, NodeStatusDeactivated, NodeStatusInProgress,
}

func ParseNodeStatusType(s string) (NodeStatusType, error) { return wire.ParseEnum(s, nodeStatusTypes) }
func (v NodeStatusType) String() string                    { return string(v) }
func (v NodeStatusType) MarshalText() ([]byte, error)      { return wire.MarshalEnum(v, nodeStatusTypes) }
func (v *NodeStatusType) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, nodeStatusTypes, v)
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusDenied   ApprovalStatus = "DENIED"
	ApprovalStatusFailed   ApprovalStatus = "FAILED"
)

var approvalStatuses = []ApprovalStatus{
	ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusDenied, ApprovalStatusFailed,
}

func ParseApprovalStatus(s string) (ApprovalStatus, error) { return wire.ParseEnum(s, approvalStatuses) }
func (v ApprovalStatus) String() string                    { return string(v) }
func (v ApprovalStatus) MarshalText() ([]byte, error)      { return wire.MarshalEnum(v, approvalStatuses) }
func (v *ApprovalStatus) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, approvalStatuses, v)
}

type UserAccountStatus string

const (
	UserAccountStatusActive   UserAccountStatus = "ACTIVE"
	UserAccountStatusPending  UserAccountStatus = "PENDING"
	UserAccountStatusDisabled UserAccountStatus = "DISABLED"
)

var userAccountStatuses = []UserAccountStatus{
	UserAccountStatusActive, UserAccountStatusPending, UserAccountStatusDisabled,
}

func ParseUserAccountStatus(s string) (UserAccountStatus, error) {
	return wire.ParseEnum(s, userAccountStatuses)
}
func (v UserAccountStatus) String() string { return string(v) }
func (v UserAccountStatus) MarshalText() ([]byte, error) {
	return wire.MarshalEnum(v, userAccountStatuses)
}
func (v *UserAccountStatus) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, userAccountStatuses, v)
}

// AccessRole is a user's role within an account.
type AccessRole string

const (
	AccessRoleManager AccessRole = "MANAGER"
	AccessRoleMember  AccessRole = "MEMBER"
	AccessRoleReader  AccessRole = "READER"
)

var accessRoles = []AccessRole{AccessRoleManager, AccessRoleMember, AccessRoleReader}

func ParseAccessRole(s string) (AccessRole, error)   { return wire.ParseEnum(s, accessRoles) }
func (v AccessRole) String() string                  { return string(v) }
func (v AccessRole) MarshalText() ([]byte, error)    { return wire.MarshalEnum(v, accessRoles) }
func (v *AccessRole) UnmarshalText(text []byte) error { return wire.UnmarshalEnum(text, accessRoles, v) }

type AppStatus string

const (
	AppStatusActive   AppStatus = "ACTIVE"
	AppStatusInactive AppStatus = "INACTIVE"
)

var appStatuses = []AppStatus{AppStatusActive, AppStatusInactive}

func ParseAppStatus(s string) (AppStatus, error)    { return wire.ParseEnum(s, appStatuses) }
func (v AppStatus) String() string                  { return string(v) }
func (v AppStatus) MarshalText() ([]byte, error)    { return wire.MarshalEnum(v, appStatuses) }
func (v *AppStatus) UnmarshalText(text []byte) error { return wire.UnmarshalEnum(text, appStatuses, v) }

type CertificateStatus string

const (
	CertificateStatusPending CertificateStatus = "PENDING"
	CertificateStatusIssued  CertificateStatus = "ISSUED"
	CertificateStatusRevoked CertificateStatus = "REVOKED"
	CertificateStatusExpired CertificateStatus = "EXPIRED"
)

var certificateStatuses = []CertificateStatus{
	CertificateStatusPending, CertificateStatusIssued, CertificateStatusRevoked, CertificateStatusExpired,
}

func ParseCertificateStatus(s string) (CertificateStatus, error) {
	return wire.ParseEnum(s, certificateStatuses)
}
func (v CertificateStatus) String() string { return string(v) }
func (v CertificateStatus) MarshalText() ([]byte, error) {
	return wire.MarshalEnum(v, certificateStatuses)
}
func (v *CertificateStatus) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, certificateStatuses, v)
}

// BuildStatusType tells whether nodes may run a build.
type BuildStatusType string

const (
	BuildStatusWhitelisted BuildStatusType = "WHITELISTED"
	BuildStatusDeprecated  BuildStatusType = "DEPRECATED"
	BuildStatusBlacklisted BuildStatusType = "BLACKLISTED"
)

var buildStatusTypes = []BuildStatusType{BuildStatusWhitelisted, BuildStatusDeprecated, BuildStatusBlacklisted}

func ParseBuildStatusType(s string) (BuildStatusType, error) { return wire.ParseEnum(s, buildStatusTypes) }
func (v BuildStatusType) String() string                     { return string(v) }
func (v BuildStatusType) MarshalText() ([]byte, error)       { return wire.MarshalEnum(v, buildStatusTypes) }
func (v *BuildStatusType) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, buildStatusTypes, v)
}

type WorkflowObjectType string

const (
	WorkflowObjectUser        WorkflowObjectType = "USER"
	WorkflowObjectDataset     WorkflowObjectType = "DATASET"
	WorkflowObjectApplication WorkflowObjectType = "APPLICATION"
)

var workflowObjectTypes = []WorkflowObjectType{WorkflowObjectUser, WorkflowObjectDataset, WorkflowObjectApplication}

func ParseWorkflowObjectType(s string) (WorkflowObjectType, error) {
	return wire.ParseEnum(s, workflowObjectTypes)
}
func (v WorkflowObjectType) String() string { return string(v) }
func (v WorkflowObjectType) MarshalText() ([]byte, error) {
	return wire.MarshalEnum(v, workflowObjectTypes)
}
func (v *WorkflowObjectType) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, workflowObjectTypes, v)
}
