package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"amendo/internal/ledger"
	"amendo/internal/services"
	"amendo/internal/watch"
)

func newOverviewCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview <job-id>",
		Short: "Fetch the overview of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			overview, err := client.JobOverview(cmd.Context(), jobID)
			if err != nil {
				return err
			}

			status := watch.DeriveStatus(overview.Fields)
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			recorded := true
			if _, err := store.RecordOverview(cmd.Context(), jobID, status, overview.Raw); err != nil {
				if !errors.Is(err, services.ErrNotFound) {
					return err
				}
				recorded = false
			}

			if asJSON {
				return writeOverviewJSON(cmd.OutOrStdout(), overview)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			raw, _ := watch.StatusField(overview.Fields)
			fmt.Fprintln(out, renderJobLine(jobID, jobStatusKind(status), fmt.Sprintf("%s (%s)", displayStatus(status), valueOrDash(raw)), colorize))
			if !recorded {
				fmt.Fprintln(out, renderStatusLine("Ledger", statusWarn, "job was not submitted from here; overview not recorded", colorize))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw overview as JSON")
	return cmd
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Poll a submitted job until it finishes or the attempts run out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			return runWatch(cmd, ctx, jobID)
		},
	}
}

func runWatch(cmd *cobra.Command, ctx *commandContext, jobID int64) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	client, err := ctx.client()
	if err != nil {
		return err
	}
	store, err := ctx.openLedger()
	if err != nil {
		return err
	}
	watcher, err := watch.New(cfg, client, store, ctx.loggerValue())
	if err != nil {
		return err
	}

	result, err := watcher.Watch(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	message := fmt.Sprintf("%s after %d of %d polls", displayStatus(result.Status), result.Attempts, cfg.Polling.Attempts)
	fmt.Fprintln(out, renderJobLine(jobID, jobStatusKind(result.Status), message, shouldColorize(out)))
	return nil
}

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs recorded in the local ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatusFlags(statusFlags)
			if err != nil {
				return err
			}
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			entries, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), jobViews(entries))
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No jobs recorded")
				return nil
			}
			fmt.Fprintln(out, renderJobsTable(entries))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&statusFlags, "status", "s", nil, "Filter by status (submitted, running, finished, failed, unknown)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	cmd.AddCommand(newJobsRemoveCommand(ctx))
	return cmd
}

func newJobsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <job-id>...",
		Short: "Forget jobs in the local ledger",
		Long:  "Remove entries from the local ledger. The jobs on the workflow server are not touched.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseJobID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			missing := 0
			for _, id := range ids {
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					missing++
					fmt.Fprintln(out, renderJobLine(id, statusWarn, "not in the ledger", colorize))
					continue
				}
				fmt.Fprintln(out, renderJobLine(id, statusOK, "removed", colorize))
			}
			if missing == len(ids) {
				return services.Wrap(services.ErrNotFound, "cli", "jobs remove", "no matching ledger entries", nil)
			}
			return nil
		},
	}
}

func parseStatusFlags(values []string) ([]ledger.Status, error) {
	statuses := make([]ledger.Status, 0, len(values))
	for _, v := range values {
		status, ok := ledger.ParseStatus(v)
		if !ok {
			names := make([]string, 0, len(ledger.AllStatuses()))
			for _, s := range ledger.AllStatuses() {
				names = append(names, string(s))
			}
			return nil, services.Wrap(services.ErrValidation, "cli", "jobs",
				fmt.Sprintf("unknown status %q (want one of %s)", v, strings.Join(names, ", ")), nil)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

type jobView struct {
	JobID        int64  `json:"job_id"`
	Ticket       string `json:"ticket"`
	AssemblyLine string `json:"assembly_line,omitempty"`
	Priority     *int   `json:"priority,omitempty"`
	FileCount    int    `json:"file_count"`
	Status       string `json:"status"`
	PollCount    int    `json:"poll_count"`
	SubmittedAt  string `json:"submitted_at"`
	UpdatedAt    string `json:"updated_at"`
}

func jobViews(entries []*ledger.Entry) []jobView {
	views := make([]jobView, 0, len(entries))
	for _, e := range entries {
		views = append(views, jobView{
			JobID:        e.JobID,
			Ticket:       e.TicketName,
			AssemblyLine: e.AssemblyLine,
			Priority:     e.Priority,
			FileCount:    e.FileCount,
			Status:       string(e.Status),
			PollCount:    e.PollCount,
			SubmittedAt:  e.SubmittedAt.UTC().Format(time.RFC3339),
			UpdatedAt:    e.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return views
}
