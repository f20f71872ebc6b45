// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// Table is the tabular view of a result.
type Table struct {
	Headers []string
	Rows    [][]string
}

var (
	upper       = cases.Upper(language.Und)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Render writes value to w. The table format uses tbl; the other formats
// encode value itself, so they show every field the API returned.
func Render(w io.Writer, format Format, tbl Table, value any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case FormatYAML:
		return renderYAML(w, value)
	case FormatTable, "":
		return renderTable(w, tbl)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTable(w io.Writer, tbl Table) error {
	if len(tbl.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	headers := make([]string, len(tbl.Headers))
	for i, h := range tbl.Headers {
		headers[i] = upper.String(h)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(tbl.Rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderYAML goes through JSON so field names, ids and enums match the wire
// form instead of the Go field layout.
func renderYAML(w io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	blockStyle(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles the JSON input left behind.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
