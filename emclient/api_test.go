// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package emclient

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toeirei/emclient/internal/exclusive"
)

// recorder implements API and records the name of every method called on it.
type recorder struct {
	name  string
	calls []string
	// hook runs inside every call when set.
	hook func()
	// fail makes every call return an error naming the recorder.
	fail bool
}

var _ API = (*recorder)(nil)

func (r *recorder) record(method string) error {
	r.calls = append(r.calls, method)
	if r.hook != nil {
		r.hook()
	}
	if r.fail {
		return errors.New(r.name + " failed")
	}
	return nil
}

func (r *recorder) Authenticate(_ context.Context, req AuthRequest) (AuthResponse, error) {
	return *new(AuthResponse), r.record("Authenticate")
}

func (r *recorder) Logout(_ context.Context) error { return r.record("Logout") }

func (r *recorder) GetManagerVersion(_ context.Context) (Version, error) {
	return *new(Version), r.record("GetManagerVersion")
}

func (r *recorder) CreateAccount(_ context.Context, req AccountRequest) (Account, error) {
	return *new(Account), r.record("CreateAccount")
}

func (r *recorder) GetAccount(_ context.Context, acctID uuid.UUID) (Account, error) {
	return *new(Account), r.record("GetAccount")
}

func (r *recorder) GetAccounts(_ context.Context) (AccountListResponse, error) {
	return *new(AccountListResponse), r.record("GetAccounts")
}

func (r *recorder) UpdateAccount(_ context.Context, acctID uuid.UUID, req AccountUpdateRequest) (Account, error) {
	return *new(Account), r.record("UpdateAccount")
}

func (r *recorder) DeleteAccount(_ context.Context, acctID uuid.UUID) error { return r.record("DeleteAccount") }

func (r *recorder) SelectAccount(_ context.Context, acctID uuid.UUID) error { return r.record("SelectAccount") }

func (r *recorder) AddApplication(_ context.Context, req AppRequest) (App, error) {
	return *new(App), r.record("AddApplication")
}

func (r *recorder) GetApp(_ context.Context, appID uuid.UUID) (App, error) {
	return *new(App), r.record("GetApp")
}

func (r *recorder) GetAllApps(_ context.Context, params GetAllAppsParams) (GetAllAppsResponse, error) {
	return *new(GetAllAppsResponse), r.record("GetAllApps")
}

func (r *recorder) UpdateApp(_ context.Context, appID uuid.UUID, req AppBodyUpdateRequest) (App, error) {
	return *new(App), r.record("UpdateApp")
}

func (r *recorder) DeleteApp(_ context.Context, appID uuid.UUID) error { return r.record("DeleteApp") }

func (r *recorder) GetAppCertificate(_ context.Context, nodeID, appID uuid.UUID) (Certificate, error) {
	return *new(Certificate), r.record("GetAppCertificate")
}

func (r *recorder) CreateApplicationConfig(_ context.Context, req ApplicationConfig) (ApplicationConfigResponse, error) {
	return *new(ApplicationConfigResponse), r.record("CreateApplicationConfig")
}

func (r *recorder) GetApplicationConfig(_ context.Context, configID string) (ApplicationConfigResponse, error) {
	return *new(ApplicationConfigResponse), r.record("GetApplicationConfig")
}

func (r *recorder) GetAllApplicationConfigs(_ context.Context, params GetAllApplicationConfigsParams) (GetAllApplicationConfigsResponse, error) {
	return *new(GetAllApplicationConfigsResponse), r.record("GetAllApplicationConfigs")
}

func (r *recorder) UpdateApplicationConfig(_ context.Context, configID string, req UpdateApplicationConfigRequest) (ApplicationConfigResponse, error) {
	return *new(ApplicationConfigResponse), r.record("UpdateApplicationConfig")
}

func (r *recorder) DeleteApplicationConfig(_ context.Context, configID string) error { return r.record("DeleteApplicationConfig") }

func (r *recorder) CreateApprovalRequest(_ context.Context, req ApprovalRequestRequest) (ApprovalRequest, error) {
	return *new(ApprovalRequest), r.record("CreateApprovalRequest")
}

func (r *recorder) GetApprovalRequest(_ context.Context, requestID uuid.UUID) (ApprovalRequest, error) {
	return *new(ApprovalRequest), r.record("GetApprovalRequest")
}

func (r *recorder) GetAllApprovalRequests(_ context.Context, params GetAllApprovalRequestsParams) (GetAllApprovalRequestsResponse, error) {
	return *new(GetAllApprovalRequestsResponse), r.record("GetAllApprovalRequests")
}

func (r *recorder) Approve(_ context.Context, requestID uuid.UUID, req ApproveRequest) (ApprovalRequest, error) {
	return *new(ApprovalRequest), r.record("Approve")
}

func (r *recorder) Deny(_ context.Context, requestID uuid.UUID, req DenyRequest) (ApprovalRequest, error) {
	return *new(ApprovalRequest), r.record("Deny")
}

func (r *recorder) DeleteApprovalRequest(_ context.Context, requestID uuid.UUID) error { return r.record("DeleteApprovalRequest") }

func (r *recorder) GetApprovalRequestResult(_ context.Context, requestID uuid.UUID) (ApprovableResult, error) {
	return *new(ApprovableResult), r.record("GetApprovalRequestResult")
}

func (r *recorder) CreateBuild(_ context.Context, req CreateBuildRequest) (Build, error) {
	return *new(Build), r.record("CreateBuild")
}

func (r *recorder) GetBuild(_ context.Context, buildID uuid.UUID) (Build, error) {
	return *new(Build), r.record("GetBuild")
}

func (r *recorder) GetAllBuilds(_ context.Context, params GetAllBuildsParams) (GetAllBuildsResponse, error) {
	return *new(GetAllBuildsResponse), r.record("GetAllBuilds")
}

func (r *recorder) UpdateBuild(_ context.Context, buildID uuid.UUID, req BuildUpdateRequest) (Build, error) {
	return *new(Build), r.record("UpdateBuild")
}

func (r *recorder) DeleteBuild(_ context.Context, buildID uuid.UUID) error { return r.record("DeleteBuild") }

func (r *recorder) ConvertAppBuild(_ context.Context, req ConvertAppBuildRequest) (Build, error) {
	return *new(Build), r.record("ConvertAppBuild")
}

func (r *recorder) GetCertificate(_ context.Context, certID uuid.UUID) (Certificate, error) {
	return *new(Certificate), r.record("GetCertificate")
}

func (r *recorder) NewCertificate(_ context.Context, req NewCertificateRequest) (TaskResult, error) {
	return *new(TaskResult), r.record("NewCertificate")
}

func (r *recorder) GetAllNodes(_ context.Context, params GetAllNodesParams) (GetAllNodesResponse, error) {
	return *new(GetAllNodesResponse), r.record("GetAllNodes")
}

func (r *recorder) GetNode(_ context.Context, nodeID uuid.UUID) (Node, error) {
	return *new(Node), r.record("GetNode")
}

func (r *recorder) UpdateNode(_ context.Context, nodeID uuid.UUID, req NodeUpdateRequest) (Node, error) {
	return *new(Node), r.record("UpdateNode")
}

func (r *recorder) DeactivateNode(_ context.Context, nodeID uuid.UUID) error { return r.record("DeactivateNode") }

func (r *recorder) ProvisionNode(_ context.Context, req NodeProvisionRequest) (TaskResult, error) {
	return *new(TaskResult), r.record("ProvisionNode")
}

func (r *recorder) GetNodeCertificate(_ context.Context, nodeID uuid.UUID) (Certificate, error) {
	return *new(Certificate), r.record("GetNodeCertificate")
}

func (r *recorder) CreateRegistry(_ context.Context, req RegistryRequest) (Registry, error) {
	return *new(Registry), r.record("CreateRegistry")
}

func (r *recorder) GetRegistry(_ context.Context, registryID uuid.UUID) (Registry, error) {
	return *new(Registry), r.record("GetRegistry")
}

func (r *recorder) GetAllRegistries(_ context.Context) ([]Registry, error) {
	return *new([]Registry), r.record("GetAllRegistries")
}

func (r *recorder) GetRegistryForImage(_ context.Context, imageName string) (Registry, error) {
	return *new(Registry), r.record("GetRegistryForImage")
}

func (r *recorder) UpdateRegistry(_ context.Context, registryID uuid.UUID, req UpdateRegistryRequest) (Registry, error) {
	return *new(Registry), r.record("UpdateRegistry")
}

func (r *recorder) DeleteRegistry(_ context.Context, registryID uuid.UUID) error { return r.record("DeleteRegistry") }

func (r *recorder) GetAllTasks(_ context.Context, params GetAllTasksParams) (GetAllTasksResponse, error) {
	return *new(GetAllTasksResponse), r.record("GetAllTasks")
}

func (r *recorder) GetTask(_ context.Context, taskID uuid.UUID) (Task, error) {
	return *new(Task), r.record("GetTask")
}

func (r *recorder) GetTaskStatus(_ context.Context, taskID uuid.UUID) (TaskResult, error) {
	return *new(TaskResult), r.record("GetTaskStatus")
}

func (r *recorder) UpdateTask(_ context.Context, taskID uuid.UUID, req TaskUpdateRequest) error { return r.record("UpdateTask") }

func (r *recorder) CreateUser(_ context.Context, req SignupRequest) (User, error) {
	return *new(User), r.record("CreateUser")
}

func (r *recorder) GetUser(_ context.Context, userID uuid.UUID) (User, error) {
	return *new(User), r.record("GetUser")
}

func (r *recorder) GetAllUsers(_ context.Context, params GetAllUsersParams) (GetAllUsersResponse, error) {
	return *new(GetAllUsersResponse), r.record("GetAllUsers")
}

func (r *recorder) GetLoggedInUser(_ context.Context) (User, error) {
	return *new(User), r.record("GetLoggedInUser")
}

func (r *recorder) UpdateUser(_ context.Context, userID uuid.UUID, req UpdateUserRequest) (User, error) {
	return *new(User), r.record("UpdateUser")
}

func (r *recorder) DeleteUser(_ context.Context, userID uuid.UUID) error { return r.record("DeleteUser") }

func (r *recorder) ChangePassword(_ context.Context, req PasswordChangeRequest) error { return r.record("ChangePassword") }

func (r *recorder) CreateWorkflowGraph(_ context.Context, req CreateWorkflowGraph) (WorkflowGraph, error) {
	return *new(WorkflowGraph), r.record("CreateWorkflowGraph")
}

func (r *recorder) GetWorkflowGraph(_ context.Context, graphID uuid.UUID) (WorkflowGraph, error) {
	return *new(WorkflowGraph), r.record("GetWorkflowGraph")
}

func (r *recorder) GetAllWorkflowGraphs(_ context.Context, params GetAllWorkflowGraphsParams) (GetAllWorkflowGraphsResponse, error) {
	return *new(GetAllWorkflowGraphsResponse), r.record("GetAllWorkflowGraphs")
}

func (r *recorder) UpdateWorkflowGraph(_ context.Context, graphID uuid.UUID, req UpdateWorkflowGraph) (WorkflowGraph, error) {
	return *new(WorkflowGraph), r.record("UpdateWorkflowGraph")
}

func (r *recorder) DeleteWorkflowGraph(_ context.Context, graphID uuid.UUID) error { return r.record("DeleteWorkflowGraph") }

func (r *recorder) GetZone(_ context.Context, zoneID uuid.UUID) (Zone, error) {
	return *new(Zone), r.record("GetZone")
}

func (r *recorder) GetZones(_ context.Context) ([]Zone, error) {
	return *new([]Zone), r.record("GetZones")
}

func (r *recorder) GetZoneJoinToken(_ context.Context, zoneID uuid.UUID) (ZoneJoinToken, error) {
	return *new(ZoneJoinToken), r.record("GetZoneJoinToken")
}

var apiType = reflect.TypeFor[API]()

// invoke calls method name on api with zero arguments.
func invoke(t *testing.T, api API, name string) error {
	t.Helper()
	m := reflect.ValueOf(api).MethodByName(name)
	require.True(t, m.IsValid(), "no method %s", name)
	args := make([]reflect.Value, m.Type().NumIn())
	for i := range args {
		in := m.Type().In(i)
		if i == 0 {
			args[i] = reflect.ValueOf(context.Background())
			continue
		}
		args[i] = reflect.Zero(in)
	}
	out := m.Call(args)
	errv := out[len(out)-1]
	if errv.IsNil() {
		return nil
	}
	return errv.Interface().(error)
}

func TestComposite_ForwardsEveryMethodToItsArea(t *testing.T) {
	composite := &Composite{}
	cv := reflect.ValueOf(composite).Elem()
	areas := map[string]*recorder{}
	for i := 0; i < cv.NumField(); i++ {
		f := cv.Type().Field(i)
		rec := &recorder{name: f.Name}
		areas[f.Name] = rec
		cv.Field(i).Set(reflect.ValueOf(rec))
	}
	require.Len(t, areas, 14)

	for i := 0; i < apiType.NumMethod(); i++ {
		name := apiType.Method(i).Name
		require.NoError(t, invoke(t, composite, name))

		var owners []string
		for j := 0; j < cv.NumField(); j++ {
			f := cv.Type().Field(j)
			if _, ok := f.Type.MethodByName(name); ok {
				owners = append(owners, f.Name)
			}
		}
		require.Len(t, owners, 1, "%s must belong to exactly one area", name)
		calls := areas[owners[0]].calls
		assert.Equal(t, name, calls[len(calls)-1], "%s forwarded to %s", name, owners[0])
	}

	total := 0
	for _, rec := range areas {
		total += len(rec.calls)
	}
	assert.Equal(t, 66, total)
	assert.Equal(t, apiType.NumMethod(), total)
}

func TestComposite_PassesArgumentsAndResults(t *testing.T) {
	nodes := &nodesFake{node: Node{Name: "node-7"}}
	c := Compose(&recorder{name: "all"})
	c.NodesAPI = nodes

	id := uuid.New()
	node, err := c.GetNode(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "node-7", node.Name)
	assert.Equal(t, []uuid.UUID{id}, nodes.ids)

	_, err = c.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, nodes.ids)
}

// nodesFake overrides one NodesAPI method; the rest panic if called.
type nodesFake struct {
	NodesAPI
	node Node
	ids  []uuid.UUID
}

func (f *nodesFake) GetNode(_ context.Context, nodeID uuid.UUID) (Node, error) {
	f.ids = append(f.ids, nodeID)
	return f.node, nil
}

func TestCompose_UsesOneImplementationForAllAreas(t *testing.T) {
	rec := &recorder{name: "all"}
	c := Compose(rec)
	for i := 0; i < apiType.NumMethod(); i++ {
		require.NoError(t, invoke(t, c, apiType.Method(i).Name))
	}
	assert.Len(t, rec.calls, apiType.NumMethod())
}

func TestNewExclusive_ForwardsEveryMethod(t *testing.T) {
	rec := &recorder{name: "inner"}
	api := NewExclusive(rec)
	for i := 0; i < apiType.NumMethod(); i++ {
		require.NoError(t, invoke(t, api, apiType.Method(i).Name))
	}
	assert.Len(t, rec.calls, apiType.NumMethod())

	rec.fail = true
	_, err := api.GetManagerVersion(context.Background())
	assert.EqualError(t, err, "inner failed")
	assert.EqualError(t, api.DeactivateNode(context.Background(), uuid.New()), "inner failed")
}

func TestNewExclusive_ReentrantCallFailsFast(t *testing.T) {
	rec := &recorder{name: "inner"}
	api := NewExclusive(rec)

	var nested error
	rec.hook = func() {
		rec.hook = nil
		nested = api.Logout(context.Background())
	}

	_, err := api.GetZones(context.Background())
	require.NoError(t, err)
	assert.True(t, errors.Is(nested, exclusive.ErrInUse), "got %v", nested)
	assert.Equal(t, []string{"GetZones"}, rec.calls)

	// The cell is released once the outer call returns.
	require.NoError(t, api.Logout(context.Background()))
}

func TestNewExclusive_ConcurrentCallIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	rec := &recorder{name: "inner"}
	rec.hook = func() {
		close(entered)
		<-release
	}
	api := NewExclusive(rec)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = api.GetTask(context.Background(), uuid.New())
	}()

	<-entered
	_, err := api.GetTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, exclusive.ErrInUse)
	close(release)
	wg.Wait()
	assert.Equal(t, []string{"GetTask"}, rec.calls)
}
