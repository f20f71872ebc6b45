// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/emclient/internal/logging"
	"github.com/toeirei/emclient/internal/output"
	"github.com/toeirei/emclient/nodeagent"
)

func newCertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Request enclave certificates through the node agent",
	}

	var (
		csrFile string
		wait    bool
		copyOut bool
	)
	issue := &cobra.Command{
		Use:   "issue --csr-file <file>",
		Short: "Submit a CSR to the node agent",
		Long: `Submits a PEM encoded certificate signing request to the node agent,
which forwards it to the manager. Issuance may need approval, so the task
id is printed and the command returns at once unless --wait is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csrFile == "" {
				return errors.New("--csr-file is required")
			}
			csr, err := os.ReadFile(csrFile)
			if err != nil {
				return fmt.Errorf("could not read CSR: %w", err)
			}
			api, err := agentAPI()
			if err != nil {
				return err
			}
			pem := string(csr)
			resp, err := api.IssueCertificate(cmd.Context(), nodeagent.IssueCertificateRequest{Csr: &pem})
			if err != nil {
				return fmt.Errorf("failed to issue certificate: %w", err)
			}
			if wait {
				if resp, err = waitForCertificate(cmd.Context(), api, resp); err != nil {
					return err
				}
			}
			return showCertificate(cmd, resp, copyOut)
		},
	}
	issue.Flags().StringVar(&csrFile, "csr-file", "", "PEM encoded CSR")
	issue.Flags().BoolVar(&wait, "wait", false, "poll until the task leaves the in-progress state")
	issue.Flags().BoolVar(&copyOut, "copy", false, "copy the issued certificate to the clipboard")

	var copyResult bool
	result := &cobra.Command{
		Use:   "result <task-id>",
		Short: "Fetch the outcome of an issuance task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			api, err := agentAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetIssueCertificateResponse(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get certificate: %w", err)
			}
			return showCertificate(cmd, resp, copyResult)
		},
	}
	result.Flags().BoolVar(&copyResult, "copy", false, "copy the issued certificate to the clipboard")

	cmd.AddCommand(issue, result)
	return cmd
}

// waitForCertificate polls the agent until the issuance task is no longer
// in progress or ctx is done.
func waitForCertificate(ctx context.Context, api nodeagent.API, resp nodeagent.IssueCertificateResponse) (nodeagent.IssueCertificateResponse, error) {
	for resp.TaskStatus != nil && *resp.TaskStatus == nodeagent.TaskStatusInProgress {
		if resp.TaskID == nil {
			return resp, errors.New("agent reported an in-progress task without an id")
		}
		logging.Debugf("task %s still in progress", resp.TaskID)
		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		case <-time.After(pollInterval):
		}
		next, err := api.GetIssueCertificateResponse(ctx, *resp.TaskID)
		if err != nil {
			return resp, fmt.Errorf("failed to poll task %s: %w", resp.TaskID, err)
		}
		resp = next
	}
	return resp, nil
}

func showCertificate(cmd *cobra.Command, resp nodeagent.IssueCertificateResponse, copyOut bool) error {
	if copyOut {
		if resp.Certificate == nil {
			return errors.New("no certificate to copy yet")
		}
		if err := copyToClipboard(*resp.Certificate); err != nil {
			return fmt.Errorf("could not copy certificate: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Certificate copied to clipboard.")
	}
	if appConfig.Output != string(output.FormatTable) {
		return render(cmd, output.Table{}, resp)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "task: %s\n", idStr(resp.TaskID))
	fmt.Fprintf(out, "status: %s\n", enumStr(resp.TaskStatus))
	if resp.Certificate != nil {
		fmt.Fprintln(out, *resp.Certificate)
	}
	return nil
}

func newEnclaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enclave",
		Short: "Enclave attestation helpers",
	}

	var outFile string
	targetInfo := &cobra.Command{
		Use:   "target-info",
		Short: "Fetch the quoting enclave target info from the node agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := agentAPI()
			if err != nil {
				return err
			}
			ti, err := api.GetTargetInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get target info: %w", err)
			}
			if outFile != "" {
				if err := os.WriteFile(outFile, ti.TargetInfo, 0o644); err != nil {
					return fmt.Errorf("could not write target info: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s.\n", len(ti.TargetInfo), outFile)
				return nil
			}
			if appConfig.Output == string(output.FormatTable) {
				fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(ti.TargetInfo))
				return nil
			}
			return render(cmd, output.Table{}, ti)
		},
	}
	targetInfo.Flags().StringVar(&outFile, "out", "", "write the raw target info to a file")

	cmd.AddCommand(targetInfo)
	return cmd
}

func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Node agent information",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the node agent version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := agentAPI()
			if err != nil {
				return err
			}
			v, err := api.GetAgentVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get agent version: %w", err)
			}
			t := output.Table{Headers: []string{"agent", "api"}, Rows: [][]string{{v.Version, nodeagent.APIVersion}}}
			return render(cmd, t, v)
		},
	})
	return cmd
}
