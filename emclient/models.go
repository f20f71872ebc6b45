// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/toeirei/emclient/internal/wire"
)

// Models shared by several resource areas. Timestamps are seconds since the
// Unix epoch as reported by the manager.

// SearchMetadata describes one page of a list response.
type SearchMetadata struct {
	Page          int64  `json:"page"`
	Pages         int64  `json:"pages"`
	Limit         *int64 `json:"limit,omitempty"`
	TotalCount    int64  `json:"total_count"`
	FilteredCount int64  `json:"filtered_count"`
}

// ListParams are the paging and search parameters accepted by every list
// operation.
type ListParams struct {
	AllSearch *string
	Limit     *int32
	Offset    *int32
	SortBy    *string
}

func (p ListParams) query() *wire.Query {
	return wire.NewQuery().
		Set("all_search", p.AllSearch).
		SetInt32("limit", p.Limit).
		SetInt32("offset", p.Offset).
		Set("sort_by", p.SortBy)
}

type Version struct {
	Version    string  `json:"version"`
	ServerMode *string `json:"server_mode,omitempty"`
}

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken *string `json:"access_token,omitempty"`
	ExpiresIn   *int64  `json:"expires_in,omitempty"`
}

type Certificate struct {
	CertificateID *uuid.UUID         `json:"certificate_id,omitempty"`
	Status        *CertificateStatus `json:"status,omitempty"`
	Csr           *string            `json:"csr,omitempty"`
	// Certificate is PEM encoded.
	Certificate *string `json:"certificate,omitempty"`
	ExpiresAt   *int64  `json:"expires_at,omitempty"`
}

type NewCertificateRequest struct {
	Csr    *string    `json:"csr,omitempty"`
	NodeID *uuid.UUID `json:"node_id,omitempty"`
}

// TaskResult is returned by operations that start a task on the manager.
type TaskResult struct {
	TaskID        *uuid.UUID      `json:"task_id,omitempty"`
	CertificateID *uuid.UUID      `json:"certificate_id,omitempty"`
	NodeID        *uuid.UUID      `json:"node_id,omitempty"`
	BuildID       *uuid.UUID      `json:"build_id,omitempty"`
	TaskType      *TaskType       `json:"task_type,omitempty"`
	TaskStatus    *TaskStatusType `json:"task_status,omitempty"`
}

// --- Accounts ---

type Account struct {
	Name       string             `json:"name"`
	AcctID     *uuid.UUID         `json:"acct_id,omitempty"`
	CreatedAt  *int64             `json:"created_at,omitempty"`
	Roles      []AccessRole       `json:"roles,omitzero"`
	Status     *UserAccountStatus `json:"status,omitempty"`
	CustomLogo []byte             `json:"custom_logo,omitzero"`
}

type AccountRequest struct {
	Name       string `json:"name"`
	CustomLogo []byte `json:"custom_logo,omitzero"`
}

type AccountUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	CustomLogo []byte  `json:"custom_logo,omitzero"`
}

type AccountListResponse struct {
	Items []Account `json:"items"`
}

// --- Applications ---

type App struct {
	AppID              *uuid.UUID        `json:"app_id,omitempty"`
	Name               string            `json:"name"`
	Description        *string           `json:"description,omitempty"`
	InputImageName     string            `json:"input_image_name"`
	OutputImageName    string            `json:"output_image_name"`
	IsvProdID          int32             `json:"isvprodid"`
	IsvSvn             int32             `json:"isvsvn"`
	MemSize            int64             `json:"mem_size"`
	Threads            int32             `json:"threads"`
	AllowedDomains     []string          `json:"allowed_domains,omitzero"`
	WhitelistedDomains []string          `json:"whitelisted_domains,omitzero"`
	Status             *AppStatus        `json:"status,omitempty"`
	CreatedAt          *int64            `json:"created_at,omitempty"`
	UpdatedAt          *int64            `json:"updated_at,omitempty"`
	Labels             map[string]string `json:"labels,omitzero"`
}

type AppRequest struct {
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	InputImageName  string            `json:"input_image_name"`
	OutputImageName string            `json:"output_image_name"`
	IsvProdID       int32             `json:"isvprodid"`
	IsvSvn          int32             `json:"isvsvn"`
	MemSize         int64             `json:"mem_size"`
	Threads         int32             `json:"threads"`
	AllowedDomains  []string          `json:"allowed_domains,omitzero"`
	Labels          map[string]string `json:"labels,omitzero"`
}

type AppBodyUpdateRequest struct {
	Description     *string           `json:"description,omitempty"`
	InputImageName  *string           `json:"input_image_name,omitempty"`
	OutputImageName *string           `json:"output_image_name,omitempty"`
	IsvSvn          *int32            `json:"isvsvn,omitempty"`
	MemSize         *int64            `json:"mem_size,omitempty"`
	Threads         *int32            `json:"threads,omitempty"`
	AllowedDomains  []string          `json:"allowed_domains,omitzero"`
	Labels          map[string]string `json:"labels,omitzero"`
}

type GetAllAppsParams struct {
	ListParams
	Name        *string
	Description *string
}

func (p GetAllAppsParams) query() *wire.Query {
	return p.ListParams.query().Set("name", p.Name).Set("description", p.Description)
}

type GetAllAppsResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []App           `json:"items"`
}

// --- Application configurations ---

type ApplicationConfigContents struct {
	Contents []byte `json:"contents,omitzero"`
}

type ApplicationConfig struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	// AppConfig maps a file path inside the enclave to its contents.
	AppConfig map[string]ApplicationConfigContents `json:"app_config"`
	Labels    map[string]string                    `json:"labels,omitzero"`
	Ports     []string                             `json:"ports,omitzero"`
}

type ApplicationConfigResponse struct {
	ConfigID    *string                              `json:"config_id,omitempty"`
	CreatedAt   *int64                               `json:"created_at,omitempty"`
	UpdatedAt   *int64                               `json:"updated_at,omitempty"`
	Name        string                               `json:"name"`
	Description *string                              `json:"description,omitempty"`
	AppConfig   map[string]ApplicationConfigContents `json:"app_config"`
	Labels      map[string]string                    `json:"labels,omitzero"`
	Ports       []string                             `json:"ports,omitzero"`
}

type UpdateApplicationConfigRequest struct {
	Name        *string                              `json:"name,omitempty"`
	Description *string                              `json:"description,omitempty"`
	AppConfig   map[string]ApplicationConfigContents `json:"app_config,omitzero"`
	Labels      map[string]string                    `json:"labels,omitzero"`
	Ports       []string                             `json:"ports,omitzero"`
}

type GetAllApplicationConfigsParams struct {
	ListParams
	Name        *string
	Description *string
	Image       *string
}

func (p GetAllApplicationConfigsParams) query() *wire.Query {
	return p.ListParams.query().
		Set("name", p.Name).
		Set("description", p.Description).
		Set("image", p.Image)
}

type GetAllApplicationConfigsResponse struct {
	Metadata *SearchMetadata             `json:"metadata,omitempty"`
	Items    []ApplicationConfigResponse `json:"items"`
}

// --- Approval requests ---

type ApprovalRequest struct {
	RequestID   *uuid.UUID      `json:"request_id,omitempty"`
	Requester   *uuid.UUID      `json:"requester,omitempty"`
	CreatedAt   *int64          `json:"created_at,omitempty"`
	ExpiresAt   *int64          `json:"expires_at,omitempty"`
	Status      *ApprovalStatus `json:"status,omitempty"`
	Operation   *string         `json:"operation,omitempty"`
	Description *string         `json:"description,omitempty"`
	Approvers   []uuid.UUID     `json:"approvers,omitzero"`
	Denier      *uuid.UUID      `json:"denier,omitempty"`
}

type ApprovalRequestRequest struct {
	Operation   string  `json:"operation"`
	Method      string  `json:"method"`
	Body        []byte  `json:"body,omitzero"`
	Description *string `json:"description,omitempty"`
}

type ApproveRequest struct {
	Note *string `json:"note,omitempty"`
}

type DenyRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ApprovableResult is the outcome of the operation an approved request ran.
type ApprovableResult struct {
	Status int32           `json:"status"`
	Body   json.RawMessage `json:"body,omitzero"`
}

type GetAllApprovalRequestsParams struct {
	ListParams
	Requester *uuid.UUID
	Status    *ApprovalStatus
}

func (p GetAllApprovalRequestsParams) query() *wire.Query {
	return p.ListParams.query().
		SetUUID("requester", p.Requester).
		Set("status", wire.EnumPtr(p.Status))
}

type GetAllApprovalRequestsResponse struct {
	Metadata *SearchMetadata   `json:"metadata,omitempty"`
	Items    []ApprovalRequest `json:"items"`
}

// --- Builds ---

type DockerInfo struct {
	DockerImageName string  `json:"docker_image_name"`
	DockerVersion   *string `json:"docker_version,omitempty"`
	DockerImageSha  *string `json:"docker_image_sha,omitempty"`
	DockerImageSize *int64  `json:"docker_image_size,omitempty"`
}

type Build struct {
	BuildID    *uuid.UUID       `json:"build_id,omitempty"`
	DockerInfo *DockerInfo      `json:"docker_info,omitempty"`
	CreatedAt  *int64           `json:"created_at,omitempty"`
	AppID      *uuid.UUID       `json:"app_id,omitempty"`
	AppName    *string          `json:"app_name,omitempty"`
	Status     *BuildStatusType `json:"status,omitempty"`
	MrEnclave  string           `json:"mrenclave"`
	MrSigner   string           `json:"mrsigner"`
	IsvProdID  int32            `json:"isvprodid"`
	IsvSvn     int32            `json:"isvsvn"`
	MemSize    *int64           `json:"mem_size,omitempty"`
	Threads    *int32           `json:"threads,omitempty"`
}

type CreateBuildRequest struct {
	DockerInfo *DockerInfo `json:"docker_info,omitempty"`
	MrEnclave  string      `json:"mrenclave"`
	MrSigner   string      `json:"mrsigner"`
	IsvProdID  int32       `json:"isvprodid"`
	IsvSvn     int32       `json:"isvsvn"`
	AppID      *uuid.UUID  `json:"app_id,omitempty"`
	AppName    *string     `json:"app_name,omitempty"`
	MemSize    *int64      `json:"mem_size,omitempty"`
	Threads    *int32      `json:"threads,omitempty"`
}

type BuildUpdateRequest struct {
	Status *BuildStatusType `json:"status,omitempty"`
}

// ConvertAppBuildRequest asks the manager to convert an application image
// into an enclave build.
type ConvertAppBuildRequest struct {
	AppID               uuid.UUID `json:"app_id"`
	InputDockerVersion  *string   `json:"input_docker_version,omitempty"`
	OutputDockerVersion *string   `json:"output_docker_version,omitempty"`
	Debug               *bool     `json:"debug,omitempty"`
	MemSize             *int64    `json:"mem_size,omitempty"`
	Threads             *int32    `json:"threads,omitempty"`
}

type GetAllBuildsParams struct {
	ListParams
	DockerImageName *string
	ConfigID        *string
}

func (p GetAllBuildsParams) query() *wire.Query {
	return p.ListParams.query().
		Set("docker_image_name", p.DockerImageName).
		Set("config_id", p.ConfigID)
}

type GetAllBuildsResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []Build         `json:"items"`
}

// --- Nodes ---

type Node struct {
	NodeID        *uuid.UUID        `json:"node_id,omitempty"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	AcctID        *uuid.UUID        `json:"acct_id,omitempty"`
	ZoneID        *uuid.UUID        `json:"zone_id,omitempty"`
	IPAddress     *string           `json:"ipaddress,omitempty"`
	HostID        *string           `json:"host_id,omitempty"`
	Version       *string           `json:"version,omitempty"`
	Status        *NodeStatusType   `json:"status,omitempty"`
	CreatedAt     *int64            `json:"created_at,omitempty"`
	AttestedAt    *int64            `json:"attested_at,omitempty"`
	CertificateID *uuid.UUID        `json:"certificate_id,omitempty"`
	Labels        map[string]string `json:"labels,omitzero"`
}

type NodeUpdateRequest struct {
	Description *string           `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitzero"`
}

// NodeProvisionRequest enrolls a node. Report and TargetInfo are raw SGX
// structures produced by the node agent.
type NodeProvisionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IPAddress   string  `json:"ipaddress"`
	HostID      *string `json:"host_id,omitempty"`
	Csr         *string `json:"csr,omitempty"`
	Report      []byte  `json:"report,omitzero"`
	TargetInfo  []byte  `json:"target_info,omitzero"`
}

type GetAllNodesParams struct {
	ListParams
	Name        *string
	Description *string
	Status      *NodeStatusType
}

func (p GetAllNodesParams) query() *wire.Query {
	return p.ListParams.query().
		Set("name", p.Name).
		Set("description", p.Description).
		Set("status", wire.EnumPtr(p.Status))
}

type GetAllNodesResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []Node          `json:"items"`
}

// --- Registries ---

type Registry struct {
	RegistryID  *uuid.UUID `json:"registry_id,omitempty"`
	URL         string     `json:"url"`
	Username    *string    `json:"username,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type RegistryCredential struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

type RegistryRequest struct {
	URL         string             `json:"url"`
	Credential  RegistryCredential `json:"credential"`
	Description *string            `json:"description,omitempty"`
}

type UpdateRegistryRequest struct {
	URL         *string             `json:"url,omitempty"`
	Credential  *RegistryCredential `json:"credential,omitempty"`
	Description *string             `json:"description,omitempty"`
}

// --- Tasks ---

type TaskStatus struct {
	Status          *TaskStatusType `json:"status,omitempty"`
	CreatedAt       *int64          `json:"created_at,omitempty"`
	StatusUpdatedAt *int64          `json:"status_updated_at,omitempty"`
}

type Task struct {
	TaskID         *uuid.UUID  `json:"task_id,omitempty"`
	EntityID       *uuid.UUID  `json:"entity_id,omitempty"`
	TaskType       *TaskType   `json:"task_type,omitempty"`
	Status         *TaskStatus `json:"status,omitempty"`
	Description    *string     `json:"description,omitempty"`
	DomainsAdded   []string    `json:"domains_added,omitzero"`
	DomainsRemoved []string    `json:"domains_removed,omitzero"`
}

// TaskUpdateRequest approves or denies a pending task.
type TaskUpdateRequest struct {
	Status ApprovalStatus `json:"status"`
	Note   *string        `json:"note,omitempty"`
}

type GetAllTasksParams struct {
	ListParams
	Status   *TaskStatusType
	TaskType *TaskType
	EntityID *uuid.UUID
}

func (p GetAllTasksParams) query() *wire.Query {
	return p.ListParams.query().
		Set("status", wire.EnumPtr(p.Status)).
		Set("task_type", wire.EnumPtr(p.TaskType)).
		SetUUID("entity_id", p.EntityID)
}

type GetAllTasksResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []Task          `json:"items"`
}

// --- Users ---

type User struct {
	UserID         *uuid.UUID         `json:"user_id,omitempty"`
	UserEmail      string             `json:"user_email"`
	FirstName      *string            `json:"first_name,omitempty"`
	LastName       *string            `json:"last_name,omitempty"`
	CreatedAt      *int64             `json:"created_at,omitempty"`
	LastLoggedInAt *int64             `json:"last_logged_in_at,omitempty"`
	EmailVerified  *bool              `json:"email_verified,omitempty"`
	Status         *UserAccountStatus `json:"status,omitempty"`
	Roles          []AccessRole       `json:"roles,omitzero"`
}

type SignupRequest struct {
	UserEmail    string  `json:"user_email"`
	UserPassword string  `json:"user_password"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
}

type UpdateUserRequest struct {
	FirstName *string      `json:"first_name,omitempty"`
	LastName  *string      `json:"last_name,omitempty"`
	Roles     []AccessRole `json:"roles,omitzero"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type GetAllUsersParams struct {
	ListParams
}

type GetAllUsersResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []User          `json:"items"`
}

// --- Workflow graphs ---

type WorkflowObject struct {
	Name        string             `json:"name"`
	Kind        WorkflowObjectType `json:"kind"`
	Description *string            `json:"description,omitempty"`
	// Ref points at the user, dataset or application the object stands for.
	Ref *uuid.UUID `json:"ref,omitempty"`
}

type WorkflowLink struct {
	ID string `json:"id"`
}

type WorkflowEdge struct {
	Source WorkflowLink `json:"source"`
	Target WorkflowLink `json:"target"`
}

type WorkflowPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WorkflowMetadata struct {
	Version   *int64                      `json:"version,omitempty"`
	Positions map[string]WorkflowPosition `json:"positions,omitzero"`
}

type WorkflowGraph struct {
	GraphID     *uuid.UUID                `json:"graph_id,omitempty"`
	Name        string                    `json:"name"`
	Description *string                   `json:"description,omitempty"`
	CreatorID   *uuid.UUID                `json:"creator_id,omitempty"`
	CreatedAt   *int64                    `json:"created_at,omitempty"`
	UpdatedAt   *int64                    `json:"updated_at,omitempty"`
	Objects     map[string]WorkflowObject `json:"objects"`
	Edges       map[string]WorkflowEdge   `json:"edges"`
	Metadata    *WorkflowMetadata         `json:"metadata,omitempty"`
}

type CreateWorkflowGraph struct {
	Name        string                    `json:"name"`
	Description *string                   `json:"description,omitempty"`
	Objects     map[string]WorkflowObject `json:"objects"`
	Edges       map[string]WorkflowEdge   `json:"edges"`
	Metadata    *WorkflowMetadata         `json:"metadata,omitempty"`
}

// UpdateWorkflowGraph replaces a graph. Version must match the stored graph.
type UpdateWorkflowGraph struct {
	Version     int64                     `json:"version"`
	Name        *string                   `json:"name,omitempty"`
	Description *string                   `json:"description,omitempty"`
	Objects     map[string]WorkflowObject `json:"objects,omitzero"`
	Edges       map[string]WorkflowEdge   `json:"edges,omitzero"`
	Metadata    *WorkflowMetadata         `json:"metadata,omitempty"`
}

type GetAllWorkflowGraphsParams struct {
	ListParams
	Name        *string
	Description *string
}

func (p GetAllWorkflowGraphsParams) query() *wire.Query {
	return p.ListParams.query().Set("name", p.Name).Set("description", p.Description)
}

type GetAllWorkflowGraphsResponse struct {
	Metadata *SearchMetadata `json:"metadata,omitempty"`
	Items    []WorkflowGraph `json:"items"`
}

// --- Zones ---

type Zone struct {
	ZoneID      *uuid.UUID `json:"zone_id,omitempty"`
	AcctID      *uuid.UUID `json:"acct_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	// Certificate is the zone CA in PEM form.
	Certificate *string `json:"certificate,omitempty"`
}

type ZoneJoinToken struct {
	Token *string `json:"token,omitempty"`
}
