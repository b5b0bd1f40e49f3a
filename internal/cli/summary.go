package cli

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mgpai22/rsub/internal/pipeline"
)

// renderSummary formats the batch outcome as a table, one row per file.
func renderSummary(summary *pipeline.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"File", "Read", "Written", "Status"})

	for _, file := range summary.Files {
		status := "ok"
		switch {
		case file.Err != nil:
			status = "failed: " + file.Err.Error()
		case file.Skipped():
			status = "unchanged"
		case file.Source != "" && file.Source != file.Path:
			status = "ok (from backup)"
		}
		tw.AppendRow(table.Row{
			file.Path,
			strconv.Itoa(file.Read),
			strconv.Itoa(file.Written),
			status,
		})
	}

	commands := make([]string, len(summary.Commands))
	for i, cmd := range summary.Commands {
		commands[i] = cmd.String()
	}
	tw.AppendFooter(table.Row{
		strings.Join(commands, " then "),
		strconv.Itoa(summary.Read),
		strconv.Itoa(summary.Written),
		strconv.Itoa(summary.Failed) + " failed",
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
