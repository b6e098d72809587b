package cli

import (
	"fmt"
	"io"

	"github.com/RevCBH/fixtaskdef/internal/taskdef"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReport prints the changes a normalization would make as a table
func RenderReport(w io.Writer, report *taskdef.Report) {
	if report == nil || !report.Changed() {
		fmt.Fprintln(w, "No changes: descriptor is already normalized")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Action", "Path", "Detail"})

	for _, field := range report.RemovedFields {
		t.AppendRow(table.Row{"remove", field, ""})
	}
	if report.RemovedCPU {
		t.AppendRow(table.Row{"remove", fmt.Sprintf("%s[0].%s", taskdef.ContainerDefinitionsKey, taskdef.CPUKey), ""})
	}
	for _, c := range report.Corrections {
		path := fmt.Sprintf("%s[0].%s[%d].value", taskdef.ContainerDefinitionsKey, taskdef.EnvironmentKey, c.Index)
		t.AppendRow(table.Row{"set", path, fmt.Sprintf("%s: %q -> %q", c.Name, c.Previous, c.Value)})
	}

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
