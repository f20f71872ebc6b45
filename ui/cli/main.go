// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the emctl command tree: the root command with its
// persistent flags, configuration loading and the version command.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/toeirei/emclient/buildvars"
	"github.com/toeirei/emclient/emclient"
	"github.com/toeirei/emclient/internal/config"
	"github.com/toeirei/emclient/internal/logging"
	"github.com/toeirei/emclient/internal/output"
	"github.com/toeirei/emclient/nodeagent"
)

const modulePath = "github.com/toeirei/emclient"

var cfgFile string

// appConfig is loaded by setupDefaultServices before any command runs.
var appConfig config.Config

func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	explicitPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), explicitPath)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(appConfig.LogLevel); err != nil {
		return err
	}
	if _, err := output.ParseFormat(appConfig.Output); err != nil {
		return err
	}
	logging.Debugf("manager %s, node agent %s", appConfig.Manager.URL, appConfig.NodeAgent.URL)
	return nil
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd builds a fresh command tree. Tests call it once per run.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emctl",
		Short: "emctl drives an Enclave Manager and its node agents.",
		Long: `emctl is a command line client for the Enclave Manager API and the
node agent API. It lists and inspects accounts, apps, builds, nodes,
tasks and zones, approves or denies pending tasks, and requests enclave
certificates from a node agent.

Settings are read from emctl.yaml in the user config directory, from
EMCTL_* environment variables and from the flags below.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
	}

	v, c, d := resolveBuildVersion(nil)
	cmd.Version = compositeVersion(v, c, d)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file")
	flags.String("manager.url", "", "Enclave Manager base URL")
	flags.String("manager.token", "", "bearer token for the manager (normally saved by login)")
	flags.String("node_agent.url", "", "node agent base URL")
	flags.Duration("timeout", 0, "per request timeout")
	flags.String("log_level", "", `log level ("debug", "info", "warn", "error")`)
	flags.StringP("output", "o", "", `output format ("table", "json", "yaml")`)

	cmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newAccountCmd(),
		newAppCmd(),
		newAppConfigCmd(),
		newBuildCmd(),
		newNodeCmd(),
		newTaskCmd(),
		newZoneCmd(),
		newUserCmd(),
		newRegistryCmd(),
		newCertCmd(),
		newEnclaveCmd(),
		newAgentCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			fmt.Fprintf(out, "manager api: %s\n", emclient.APIVersion)
			fmt.Fprintf(out, "node agent api: %s\n", nodeagent.APIVersion)
			if !server {
				return nil
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			sv, err := api.GetManagerVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get manager version: %w", err)
			}
			fmt.Fprintf(out, "manager: %s\n", sv.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "also query the manager version")
	return cmd
}

func compositeVersion(v, c, d string) string {
	composite := v
	if c != "" && c != "dev" {
		composite += " (" + c + ")"
	}
	if d != "" {
		composite += " built: " + d
	}
	return composite
}

// resolveBuildVersion computes the best-available version, commit and build
// date. If info is nil, the runtime build info is used.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := buildvars.Commit
	if resolvedCommit == "" {
		resolvedCommit = "dev"
	}
	resolvedDate := buildvars.Date

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// When built as a dependency the main module is someone else's.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && resolvedCommit != "dev" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
