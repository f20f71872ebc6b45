// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/toeirei/emclient/emclient"
	"github.com/toeirei/emclient/internal/output"
)

func newAppConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "app-config",
		Aliases: []string{"appconfig"},
		Short:   "List, inspect, export and import application configurations",
	}

	configTable := func(items ...emclient.ApplicationConfigResponse) output.Table {
		t := output.Table{Headers: []string{"id", "name", "files", "ports", "labels", "updated"}}
		for _, c := range items {
			files := make([]string, 0, len(c.AppConfig))
			for path := range c.AppConfig {
				files = append(files, path)
			}
			sort.Strings(files)
			t.Rows = append(t.Rows, []string{
				str(c.ConfigID), c.Name, strings.Join(files, ","), strings.Join(c.Ports, ","), labels(c.Labels), unixTime(c.UpdatedAt),
			})
		}
		return t
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List application configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			resp, err := api.GetAllApplicationConfigs(cmd.Context(), emclient.GetAllApplicationConfigsParams{
				ListParams: listParams(cmd),
				Name:       optionalString(cmd, "name"),
				Image:      optionalString(cmd, "image"),
			})
			if err != nil {
				return fmt.Errorf("failed to list app configs: %w", err)
			}
			return render(cmd, configTable(resp.Items...), resp)
		},
	}
	addListFlags(list)
	list.Flags().String("name", "", "filter by configuration name")
	list.Flags().String("image", "", "filter by image the configuration is attached to")

	get := &cobra.Command{
		Use:   "get <config-id>",
		Short: "Show one application configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := managerAPI()
			if err != nil {
				return err
			}
			c, err := api.GetApplicationConfig(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get app config: %w", err)
			}
			return render(cmd, configTable(c), c)
		},
	}

	export := &cobra.Command{
		Use:   "export <config-id> [output-file]",
		Short: "Save an application configuration as compressed (zstd) JSON",
		Long: `Fetches an application configuration and writes it, file contents
included, into a Zstandard-compressed JSON file that "app-config import"
accepts.

'.zst' is appended to the output file name if it is not already present.
Without an output file, 'appconfig-<config-id>-YYYY-MM-DD.json.zst' is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("appconfig-%s-%s.json.zst", args[0], time.Now().Format("2006-01-02"))
			if len(args) == 2 {
				outputFile = args[1]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			c, err := api.GetApplicationConfig(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get app config: %w", err)
			}
			data := emclient.ApplicationConfig{
				Name:        c.Name,
				Description: c.Description,
				AppConfig:   c.AppConfig,
				Labels:      c.Labels,
				Ports:       c.Ports,
			}
			if err := writeCompressedAppConfig(outputFile, &data); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s.\n", c.Name, outputFile)
			return nil
		},
	}

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Create an application configuration from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readCompressedAppConfig(args[0])
			if err != nil {
				return fmt.Errorf("failed to read export: %w", err)
			}
			if name := optionalString(cmd, "name"); name != nil {
				data.Name = *name
			}
			api, err := managerAPI()
			if err != nil {
				return err
			}
			c, err := api.CreateApplicationConfig(cmd.Context(), *data)
			if err != nil {
				return fmt.Errorf("failed to create app config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s.\n", c.Name, str(c.ConfigID))
			return nil
		},
	}
	imp.Flags().String("name", "", "create the configuration under a different name")

	cmd.AddCommand(list, get, export, imp)
	return cmd
}

// writeCompressedAppConfig streams data as indented JSON through a zstd
// encoder into filename.
func writeCompressedAppConfig(filename string, data *emclient.ApplicationConfig) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	// Close flushes the last frame.
	if err := zstdWriter.Close(); err != nil {
		return fmt.Errorf("could not finish zstd stream: %w", err)
	}
	return file.Close()
}

func readCompressedAppConfig(filename string) (*emclient.ApplicationConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var data emclient.ApplicationConfig
	if err := json.NewDecoder(zstdReader).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if data.Name == "" {
		return nil, fmt.Errorf("%s: configuration has no name", filename)
	}
	return &data, nil
}
