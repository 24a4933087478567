package netcheck

import (
	"fmt"
	"io"

	pstrings "preflight/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteReport renders probe results as a table for the operator.
func WriteReport(w io.Writer, results []Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ENDPOINT"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("LATENCY"),
		text.FgHiCyan.Sprint("DETAIL"),
	})

	for _, r := range results {
		status := text.FgGreen.Sprint("reachable")
		latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
		detail := ""
		if !r.Reachable {
			status = text.FgRed.Sprint("unreachable")
			latency = "-"
			detail = r.Kind.String()
			if r.Reason != nil {
				detail = pstrings.TruncateDetail(fmt.Sprintf("%s: %v", r.Kind, r.Reason), pstrings.DefaultDetailMaxLen)
			}
		}
		t.AppendRow(table.Row{r.Endpoint, status, latency, detail})
	}

	t.Render()
}
