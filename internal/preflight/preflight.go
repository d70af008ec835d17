package preflight

import (
	"context"

	"amendo/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run executes every check for the given config. The download directory is
// only checked once it exists because it is created on first download.
func Run(ctx context.Context, cfg *config.Config, client Requester) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if dir := cfg.Paths.DownloadDir; dir != "" && dirExists(dir) {
		results = append(results, CheckDirectoryAccess("Download directory", dir))
	}
	if client != nil {
		results = append(results, CheckServer(ctx, client))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
