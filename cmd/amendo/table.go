package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"amendo/internal/ledger"
)

// jobColumn describes one column of the jobs table.
type jobColumn struct {
	Header string
	Align  text.Align
	Value  func(e *ledger.Entry) string
}

var jobColumns = []jobColumn{
	{"Job", text.AlignRight, func(e *ledger.Entry) string { return strconv.FormatInt(e.JobID, 10) }},
	{"Ticket", text.AlignLeft, func(e *ledger.Entry) string { return e.TicketName }},
	{"Assembly Line", text.AlignLeft, func(e *ledger.Entry) string { return valueOrDash(e.AssemblyLine) }},
	{"Priority", text.AlignRight, func(e *ledger.Entry) string { return formatPriority(e.Priority) }},
	{"Files", text.AlignRight, func(e *ledger.Entry) string { return strconv.Itoa(e.FileCount) }},
	{"Status", text.AlignLeft, func(e *ledger.Entry) string { return displayStatus(e.Status) }},
	{"Polls", text.AlignRight, func(e *ledger.Entry) string { return strconv.Itoa(e.PollCount) }},
	{"Submitted", text.AlignLeft, func(e *ledger.Entry) string { return formatTimestamp(e.SubmittedAt) }},
}

// renderJobsTable draws ledger entries in the order given. Headers use the
// writer's default style and are therefore upper-cased.
func renderJobsTable(entries []*ledger.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(jobColumns))
	configs := make([]table.ColumnConfig, len(jobColumns))
	for i, col := range jobColumns {
		header[i] = col.Header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.Align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, e := range entries {
		row := make(table.Row, len(jobColumns))
		for i, col := range jobColumns {
			row[i] = col.Value(e)
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
