package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"linkedin-voyager/lib/schema"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// render writes value as json or yaml, or calls asTable for the table format.
func render(value any, asTable func(t table.Writer)) error {
	switch *outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}
	t := newTable(os.Stdout)
	asTable(t)
	t.Render()
	return nil
}

// renderDiagnostics always goes to stderr so that stdout stays parseable.
func renderDiagnostics(diags schema.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	t := newTable(os.Stderr)
	t.SetTitle(fmt.Sprintf("%d values dropped", len(diags)))
	t.AppendHeader(table.Row{"Fragment", "Entity", "Field", "Code", "Raw", "Reason"})
	for _, d := range diags {
		t.AppendRow(table.Row{d.Fragment, d.Entity, d.Field, d.Code, truncate(d.Raw, 40), d.Reason})
	}
	t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
