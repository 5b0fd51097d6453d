package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

// view is a command result. Data is encoded for yaml and json; Headers
// and Rows are used for tables. A view without rows prints Data as yaml.
type view struct {
	Data    any
	Headers []string
	Rows    [][]string
	Footer  string
}

type output struct {
	w      io.Writer
	format string
}

func newOutput(w io.Writer, format string) (*output, error) {
	switch format {
	case formatTable, formatYAML, formatJSON:
		return &output{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (o *output) print(v view) error {
	switch {
	case o.format == formatJSON:
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Data)
	case o.format == formatYAML, v.Headers == nil:
		enc := yaml.NewEncoder(o.w)
		enc.SetIndent(2)
		if err := enc.Encode(v.Data); err != nil {
			return err
		}
		return enc.Close()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(v.Headers...).
		Rows(v.Rows...)
	if _, err := fmt.Fprintln(o.w, t.Render()); err != nil {
		return err
	}
	if v.Footer != "" {
		_, err := fmt.Fprintln(o.w, v.Footer)
		return err
	}
	return nil
}

// message prints a one-line confirmation, or {"message": msg} for
// machine formats.
func (o *output) message(msg string) error {
	if o.format == formatTable {
		_, err := fmt.Fprintln(o.w, msg)
		return err
	}
	return o.print(view{Data: map[string]string{"message": msg}})
}
