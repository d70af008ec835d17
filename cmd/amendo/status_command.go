package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"amendo/internal/config"
	"amendo/internal/ledger"
	"amendo/internal/preflight"
	"amendo/internal/services"
	"amendo/internal/watch"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, the workflow server, and the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Environment", colorize)
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			results := preflight.Run(cmd.Context(), cfg, client)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Ledger", colorize)...)
			store, err := ctx.openLedger()
			if err != nil {
				lines = append(lines, renderStatusLine("Database", statusError, err.Error(), colorize))
			} else {
				lines = append(lines, renderStatusLine("Database", statusOK, store.Path(), colorize))
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				lines = append(lines, renderLedgerStats(stats, colorize)...)
			}
			lines = append(lines, renderWatchLock(cfg, colorize))

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if !preflight.AllPassed(results) {
				return services.Wrap(services.ErrConfiguration, "cli", "status", "one or more checks failed", nil)
			}
			return nil
		},
	}
}

func renderLedgerStats(stats map[ledger.Status]int, colorize bool) []string {
	if len(stats) == 0 {
		return []string{renderStatusLine("Jobs", statusInfo, "none recorded", colorize)}
	}
	statuses := make([]ledger.Status, 0, len(stats))
	for status := range stats {
		statuses = append(statuses, status)
	}
	order := make(map[ledger.Status]int)
	for i, s := range ledger.AllStatuses() {
		order[s] = i
	}
	sort.Slice(statuses, func(i, j int) bool { return order[statuses[i]] < order[statuses[j]] })

	lines := make([]string, 0, len(statuses))
	for _, status := range statuses {
		lines = append(lines, renderStatusLine(displayStatus(status), jobStatusKind(status), fmt.Sprintf("%d", stats[status]), colorize))
	}
	return lines
}

func renderWatchLock(cfg *config.Config, colorize bool) string {
	active, err := watch.Active(cfg)
	switch {
	case err != nil:
		return renderStatusLine("Watcher", statusWarn, err.Error(), colorize)
	case active:
		return renderStatusLine("Watcher", statusInfo, "running (lock "+watch.LockPath(cfg)+")", colorize)
	default:
		return renderStatusLine("Watcher", statusInfo, "idle", colorize)
	}
}
