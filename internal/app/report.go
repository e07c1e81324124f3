package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// reportRow is one line of the capability report.
type reportRow struct {
	Feature     string `json:"feature"`
	State       string `json:"state"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

func (a *App) reportRows() []reportRow {
	snap := a.features.Snapshot()
	defs := a.features.Definitions()

	rows := make([]reportRow, 0, len(defs))
	for _, id := range snap.IDs() {
		st, _ := snap.Status(id)
		rows = append(rows, reportRow{
			Feature:     id,
			State:       st.State.String(),
			Reason:      st.Reason,
			Description: defs[id].Description,
		})
	}
	return rows
}

func (a *App) writeReport(w io.Writer) error {
	rows := a.reportRows()

	if a.config.ReportFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tSTATE\tREASON")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Feature, row.State, row.Reason)
	}
	return tw.Flush()
}
