package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amendo/internal/ledger"
	"amendo/internal/logging"
	"amendo/internal/preflight"
	"amendo/internal/services"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var watchAfter bool
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "submit <ticket.toml>",
		Short: "Submit a job ticket to the workflow server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, job, err := ctx.loadTicket(args[0])
			if err != nil {
				return err
			}
			body, err := job.XML()
			if err != nil {
				return services.Wrap(services.ErrValidation, "cli", "submit", "render ticket", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Ticket %q is valid (%d files, assembly line %s); not submitted\n",
					job.Name(), len(job.RunListFiles()), def.AssemblyLine)
				return nil
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			if !skipChecks {
				if check := preflight.CheckServer(cmd.Context(), client); !check.Passed {
					return services.Wrap(services.ErrTransport, "cli", "submit", check.Name+": "+check.Detail, nil)
				}
			}

			jobID, err := client.StartJobTicket(cmd.Context(), job)
			if err != nil {
				return err
			}
			if jobID == 0 {
				return services.Wrap(services.ErrTransport, "cli", "submit", "server did not return a job id", nil)
			}

			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			sub := ledger.Submission{
				JobID:        jobID,
				TicketName:   job.Name(),
				AssemblyLine: strings.TrimSpace(def.AssemblyLine),
				Priority:     def.Priority,
				FileCount:    len(job.RunListFiles()),
				TicketXML:    body,
			}
			if _, err := store.Record(cmd.Context(), sub); err != nil {
				ctx.loggerValue().Warn("job submitted but not recorded in ledger", logging.Args(
					logging.Int64(logging.FieldJobID, jobID),
					logging.Error(err),
				)...)
				return fmt.Errorf("job %d submitted but ledger update failed: %w", jobID, err)
			}

			fmt.Fprintf(out, "Submitted %q as job %d\n", job.Name(), jobID)
			if !watchAfter {
				return nil
			}
			return runWatch(cmd, ctx, jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and render the ticket without submitting it")
	cmd.Flags().BoolVarP(&watchAfter, "watch", "w", false, "Poll the job overview after submitting")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Do not probe the server before submitting")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
	return cmd
}
