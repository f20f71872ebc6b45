// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toeirei/emclient/buildvars"
	"github.com/toeirei/emclient/emclient"
	"github.com/toeirei/emclient/internal/output"
	"github.com/toeirei/emclient/nodeagent"
	"github.com/toeirei/emclient/util/ptrs"
)

// Replaced in tests.
var (
	readPassword = func() (string, error) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		return string(b), err
	}
	copyToClipboard = clipboard.WriteAll
	pollInterval    = 2 * time.Second
)

// managerAPI connects to the configured manager. Commands issue one call at
// a time, so the client is wrapped to reject accidental overlap.
func managerAPI() (emclient.API, error) {
	c, err := emclient.New(appConfig.ManagerClientConfig(buildvars.UserAgent("emctl")))
	if err != nil {
		return nil, fmt.Errorf("manager: %w", err)
	}
	return emclient.NewExclusive(c), nil
}

func agentAPI() (nodeagent.API, error) {
	c, err := nodeagent.New(appConfig.NodeAgentClientConfig(buildvars.UserAgent("emctl")))
	if err != nil {
		return nil, fmt.Errorf("node agent: %w", err)
	}
	return nodeagent.NewExclusive(c), nil
}

func render(cmd *cobra.Command, tbl output.Table, value any) error {
	format, err := output.ParseFormat(appConfig.Output)
	if err != nil {
		return err
	}
	return output.Render(cmd.OutOrStdout(), format, tbl, value)
}

func parseID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", kind, s, err)
	}
	return id, nil
}

// addListFlags registers the paging flags shared by list commands.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int32("limit", 0, "maximum number of items to return")
	cmd.Flags().Int32("offset", 0, "number of items to skip")
	cmd.Flags().String("search", "", "free text search across all fields")
	cmd.Flags().String("sort", "", `sort order, e.g. "name:asc"`)
}

// listParams reads the flags from addListFlags. Unset flags are not sent.
func listParams(cmd *cobra.Command) emclient.ListParams {
	var p emclient.ListParams
	if cmd.Flags().Changed("limit") {
		v, _ := cmd.Flags().GetInt32("limit")
		p.Limit = &v
	}
	if cmd.Flags().Changed("offset") {
		v, _ := cmd.Flags().GetInt32("offset")
		p.Offset = &v
	}
	p.AllSearch = optionalString(cmd, "search")
	p.SortBy = optionalString(cmd, "sort")
	return p
}

func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optionalEnum parses the flag name with parse when it was set.
func optionalEnum[T ~string](cmd *cobra.Command, name string, parse func(string) (T, error)) (*T, error) {
	s := optionalString(cmd, name)
	if s == nil {
		return nil, nil
	}
	v, err := parse(strings.ToUpper(*s))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &v, nil
}

func str(p *string) string { return ptrs.Deref(p, "") }

func idStr(p *uuid.UUID) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func enumStr[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func unixTime(p *int64) string {
	if p == nil || *p == 0 {
		return ""
	}
	return time.Unix(*p, 0).UTC().Format(time.RFC3339)
}

func labels(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
