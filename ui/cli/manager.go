// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/emclient/emclient"
	"github.com/toeirei/emclient/internal/output"
)

// --- Accounts ---

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "List, inspect and select manager accounts",
	}

	accountTable := func(items ...emclient.Account) output.Table {
		t := output.Table{Headers: []string{"id", "name", "status", "roles", "created"}}
		for _, a := range items {
			roles := make([]string, len(a.Roles))
			for i, r := range a.Roles {
				roles[i] = string(r)
			}
			t.Rows = append(t.Rows, []string{
				idStr(a.AcctID), a.Name, enumStr(a.Status), strings.Join(roles, ","), unixTime(a.CreatedAt),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the accounts you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}
			return render(cmd, accountTable(resp.Items...), resp.Items)
		},
	}

	get := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			acct, err := api.GetAccount(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}
			return render(cmd, accountTable(acct), acct)
		},
	}

	sel := &cobra.Command{
		Use:   "select <account-id>",
		Short: "Make an account the target of later calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			if err := api.SelectAccount(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to select account: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected account %s.\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, sel)
	return cmd
}

// --- Apps ---

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "List and inspect applications",
	}

	appTable := func(items ...emclient.App) output.Table {
		t := output.Table{Headers: []string{"id", "name", "input image", "output image", "status", "labels"}}
		for _, a := range items {
			t.Rows = append(t.Rows, []string{
				idStr(a.AppID), a.Name, a.InputImageName, a.OutputImageName, enumStr(a.Status), labels(a.Labels),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllApps(cmd.Context(), emclient.GetAllAppsParams{
				ListParams: listParams(cmd),
				Name:       optionalString(cmd, "name"),
			})
			if err != nil {
				return fmt.Errorf("failed to list apps: %w", err)
			}
			return render(cmd, appTable(resp.Items...), resp)
		},
	}
	addListFlags(list)
	list.Flags().String("name", "", "filter by application name")

	get := &cobra.Command{
		Use:   "get <app-id>",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("app", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			app, err := api.GetApp(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get app: %w", err)
			}
			return render(cmd, appTable(app), app)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// --- Builds ---

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "List and inspect enclave builds",
	}

	buildTable := func(items ...emclient.Build) output.Table {
		t := output.Table{Headers: []string{"id", "app", "image", "status", "mrenclave", "created"}}
		for _, b := range items {
			image := ""
			if b.DockerInfo != nil {
				image = b.DockerInfo.DockerImageName
				if b.DockerInfo.DockerVersion != nil {
					image += ":" + *b.DockerInfo.DockerVersion
				}
			}
			t.Rows = append(t.Rows, []string{
				idStr(b.BuildID), str(b.AppName), image, enumStr(b.Status), b.MrEnclave, unixTime(b.CreatedAt),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllBuilds(cmd.Context(), emclient.GetAllBuildsParams{
				ListParams:      listParams(cmd),
				DockerImageName: optionalString(cmd, "image"),
			})
			if err != nil {
				return fmt.Errorf("failed to list builds: %w", err)
			}
			return render(cmd, buildTable(resp.Items...), resp)
		},
	}
	addListFlags(list)
	list.Flags().String("image", "", "filter by docker image name")

	get := &cobra.Command{
		Use:   "get <build-id>",
		Short: "Show one build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("build", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			b, err := api.GetBuild(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get build: %w", err)
			}
			return render(cmd, buildTable(b), b)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// --- Nodes ---

func newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "List, inspect and deactivate compute nodes",
	}

	nodeTable := func(items ...emclient.Node) output.Table {
		t := output.Table{Headers: []string{"id", "name", "ip address", "status", "version", "attested"}}
		for _, n := range items {
			t.Rows = append(t.Rows, []string{
				idStr(n.NodeID), n.Name, str(n.IPAddress), enumStr(n.Status), str(n.Version), unixTime(n.AttestedAt),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := optionalEnum(cmd, "status", emclient.ParseNodeStatusType)
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllNodes(cmd.Context(), emclient.GetAllNodesParams{
				ListParams: listParams(cmd),
				Name:       optionalString(cmd, "name"),
				Status:     status,
			})
			if err != nil {
				return fmt.Errorf("failed to list nodes: %w", err)
			}
			return render(cmd, nodeTable(resp.Items...), resp)
		},
	}
	addListFlags(list)
	list.Flags().String("name", "", "filter by node name")
	list.Flags().String("status", "", "filter by status (running, stopped, failed, deactivated, inprogress)")

	get := &cobra.Command{
		Use:   "get <node-id>",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("node", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			n, err := api.GetNode(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get node: %w", err)
			}
			return render(cmd, nodeTable(n), n)
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <node-id>",
		Short: "Deactivate a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("node", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			if err := api.DeactivateNode(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to deactivate node: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Node %s deactivated.\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, deactivate)
	return cmd
}

// --- Tasks ---

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List, inspect, approve and deny manager tasks",
	}

	taskTable := func(items ...emclient.Task) output.Table {
		t := output.Table{Headers: []string{"id", "type", "status", "entity", "description", "created"}}
		for _, task := range items {
			var status string
			var created *int64
			if task.Status != nil {
				status = enumStr(task.Status.Status)
				created = task.Status.CreatedAt
			}
			t.Rows = append(t.Rows, []string{
				idStr(task.TaskID), enumStr(task.TaskType), status, idStr(task.EntityID), str(task.Description), unixTime(created),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := optionalEnum(cmd, "status", emclient.ParseTaskStatusType)
			if err != nil {
				return err
			}
			taskType, err := optionalEnum(cmd, "type", emclient.ParseTaskType)
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllTasks(cmd.Context(), emclient.GetAllTasksParams{
				ListParams: listParams(cmd),
				Status:     status,
				TaskType:   taskType,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			return render(cmd, taskTable(resp.Items...), resp)
		},
	}
	addListFlags(list)
	list.Flags().String("status", "", "filter by status (inprogress, failed, success, denied, pending_whitelist)")
	list.Flags().String("type", "", "filter by type (node_attestation, certificate_issuance, build_whitelist, domain_whitelist)")

	get := &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			task, err := api.GetTask(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}
			return render(cmd, taskTable(task), task)
		},
	}

	cmd.AddCommand(list, get,
		newTaskDecisionCmd("approve", emclient.ApprovalStatusApproved),
		newTaskDecisionCmd("deny", emclient.ApprovalStatusDenied),
	)
	return cmd
}

func newTaskDecisionCmd(verb string, status emclient.ApprovalStatus) *cobra.Command {
	cmd := &cobra.Command{
		Use:   verb + " <task-id>",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a pending task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			req := emclient.TaskUpdateRequest{Status: status, Note: optionalString(cmd, "note")}
			if err := api.UpdateTask(cmd.Context(), id, req); err != nil {
				return fmt.Errorf("failed to %s task: %w", verb, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s %s.\n", id, strings.ToLower(string(status)))
			return nil
		},
	}
	cmd.Flags().String("note", "", "note recorded with the decision")
	return cmd
}

// --- Zones ---

func newZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "List zones and fetch join tokens",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			zones, err := api.GetZones(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list zones: %w", err)
			}
			t := output.Table{Headers: []string{"id", "name", "description"}}
			for _, z := range zones {
				t.Rows = append(t.Rows, []string{idStr(z.ZoneID), str(z.Name), str(z.Description)})
			}
			return render(cmd, t, zones)
		},
	}

	token := &cobra.Command{
		Use:   "token <zone-id>",
		Short: "Print the token a node uses to join a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("zone", args[0])
			if err != nil {
				return err
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			tok, err := api.GetZoneJoinToken(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get join token: %w", err)
			}
			if appConfig.Output == string(output.FormatTable) {
				fmt.Fprintln(cmd.OutOrStdout(), str(tok.Token))
				return nil
			}
			return render(cmd, output.Table{}, tok)
		},
	}

	cmd.AddCommand(list, token)
	return cmd
}

// --- Users ---

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show users of the selected account",
	}

	userTable := func(items ...emclient.User) output.Table {
		t := output.Table{Headers: []string{"id", "email", "name", "status", "verified", "last login"}}
		for _, u := range items {
			name := strings.TrimSpace(str(u.FirstName) + " " + str(u.LastName))
			verified := ""
			if u.EmailVerified != nil {
				verified = strconv.FormatBool(*u.EmailVerified)
			}
			t.Rows = append(t.Rows, []string{
				idStr(u.UserID), u.UserEmail, name, enumStr(u.Status), verified, unixTime(u.LastLoggedInAt),
			})
		}
		return t
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			u, err := api.GetLoggedInUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}
			return render(cmd, userTable(u), u)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllUsers(cmd.Context(), emclient.GetAllUsersParams{ListParams: listParams(cmd)})
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}
			return render(cmd, userTable(resp.Items...), resp)
		},
	}
	addListFlags(list)

	cmd.AddCommand(whoami, list)
	return cmd
}

// --- Registries ---

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Show docker registries known to the manager",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			regs, err := api.GetAllRegistries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list registries: %w", err)
			}
			t := output.Table{Headers: []string{"id", "url", "username", "description"}}
			for _, r := range regs {
				t.Rows = append(t.Rows, []string{idStr(r.RegistryID), r.URL, str(r.Username), str(r.Description)})
			}
			return render(cmd, t, regs)
		},
	}

	cmd.AddCommand(list)
	return cmd
}
