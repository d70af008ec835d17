package watch

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"amendo/internal/ledger"
)

var statusKeys = []string{"status", "state"}

var (
	finishedWords = []string{"finished", "completed", "complete", "done", "success", "succeeded", "ok"}
	failedWords   = []string{"failed", "failure", "error", "aborted", "cancelled", "canceled", "rejected"}
	runningWords  = []string{"running", "processing", "active", "started", "inprogress", "in_progress", "in progress"}
	waitingWords  = []string{"queued", "waiting", "pending", "submitted", "new", "created", "scheduled"}
)

// StatusField returns the top-level overview value for "status" or "state",
// rendered as text. An exact key wins; otherwise keys are compared case
// folded in sorted order so the choice is stable.
func StatusField(fields map[string]any) (string, bool) {
	fold := cases.Fold()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, want := range statusKeys {
		if value, ok := fields[want]; ok {
			return statusText(value)
		}
		for _, key := range keys {
			if fold.String(strings.TrimSpace(key)) == want {
				return statusText(fields[key])
			}
		}
	}
	return "", false
}

func statusText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

// DeriveStatus maps an overview to a ledger status. Unrecognized or missing
// values yield StatusUnknown.
func DeriveStatus(fields map[string]any) ledger.Status {
	raw, ok := StatusField(fields)
	if !ok {
		return ledger.StatusUnknown
	}
	folded := cases.Fold().String(strings.TrimSpace(raw))
	switch {
	case containsWord(failedWords, folded):
		return ledger.StatusFailed
	case containsWord(finishedWords, folded):
		return ledger.StatusFinished
	case containsWord(runningWords, folded):
		return ledger.StatusRunning
	case containsWord(waitingWords, folded):
		return ledger.StatusSubmitted
	default:
		return ledger.StatusUnknown
	}
}

func containsWord(words []string, value string) bool {
	for _, w := range words {
		if w == value {
			return true
		}
	}
	return false
}
