// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toeirei/emclient/emclient"
	"github.com/toeirei/emclient/internal/config"
	"github.com/toeirei/emclient/internal/logging"
)

func newLoginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the manager and save the token",
		Long: `Exchanges a username and password for a bearer token and stores the
token, together with the manager URL in use, in the config file. The
password is read from the terminal without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			password, err := readPassword()
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("could not read password: %w", err)
			}

			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.Authenticate(cmd.Context(), emclient.AuthRequest{Username: username, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if resp.AccessToken == nil || *resp.AccessToken == "" {
				return errors.New("login failed: manager returned no token")
			}

			appConfig.Manager.Token = *resp.AccessToken
			path, err := saveConfig(cmd)
			if err != nil {
				return fmt.Errorf("could not save token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token saved to %s.\n", username, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the saved token and remove it from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appConfig.Manager.Token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			// The local token is dropped even if the manager already
			// forgot it.
			if err := api.Logout(cmd.Context()); err != nil {
				logging.Warnf("manager logout failed: %v", err)
			}
			appConfig.Manager.Token = ""
			if _, err := saveConfig(cmd); err != nil {
				return fmt.Errorf("could not save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// saveConfig writes appConfig back to the file given with --config, or to
// the user config file.
func saveConfig(cmd *cobra.Command) (string, error) {
	explicitPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return "", err
	}
	if explicitPath != nil {
		return *explicitPath, config.WriteConfigFileAt(&appConfig, *explicitPath)
	}
	return config.WriteConfigFile(&appConfig, false)
}
