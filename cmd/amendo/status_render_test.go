package main

import (
	"bytes"
	"strings"
	"testing"

	"amendo/internal/ledger"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Amendo server", statusOK, "reachable", false)
	if !strings.Contains(line, "Amendo server:") || !strings.HasSuffix(line, "[OK] reachable") {
		t.Fatalf("unexpected line %q", line)
	}
	colored := renderStatusLine("Job 1", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red line, got %q", colored)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestDisplayStatus(t *testing.T) {
	if got := displayStatus(ledger.StatusFinished); got != "Finished" {
		t.Fatalf("displayStatus = %q", got)
	}
	if got := displayStatus(""); got != "-" {
		t.Fatalf("displayStatus(empty) = %q", got)
	}
}

func TestRenderLedgerStatsOrder(t *testing.T) {
	lines := renderLedgerStats(map[ledger.Status]int{
		ledger.StatusFailed:    1,
		ledger.StatusSubmitted: 4,
	}, false)
	if len(lines) != 2 || !strings.Contains(lines[0], "Submitted") || !strings.Contains(lines[1], "Failed") {
		t.Fatalf("unexpected lines %v", lines)
	}
}
