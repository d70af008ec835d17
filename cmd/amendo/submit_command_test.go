package main

import (
	"context"
	"strings"
	"testing"

	"amendo/internal/ledger"
	"amendo/internal/testsupport"
)

func TestSubmitRecordsJobInLedger(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "job.toml", exampleTicket)

	out, _, err := runCLI(t, []string{"submit", path}, env.configPath)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	requireContains(t, out, `Submitted "Test 1" as job 500`)

	tickets := env.server.Tickets()
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	requireContains(t, tickets[0], `<AssemblyLineReference>Test-AssemblyLine</AssemblyLineReference>`)
	for _, key := range env.server.APIKeys() {
		if key != "test-key" {
			t.Fatalf("unexpected api key %q", key)
		}
	}

	store := testsupport.MustOpenLedger(t, env.cfg)
	entry, err := store.GetByJobID(context.Background(), 500)
	if err != nil {
		t.Fatalf("GetByJobID: %v", err)
	}
	if entry == nil {
		t.Fatal("expected ledger entry for job 500")
	}
	if entry.TicketXML != tickets[0] {
		t.Fatal("ledger should keep the exact ticket that was sent")
	}
	if entry.Status != ledger.StatusSubmitted || entry.FileCount != 2 || entry.Priority == nil || *entry.Priority != 60 {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestSubmitDryRunSendsNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "job.toml", exampleTicket)

	out, _, err := runCLI(t, []string{"submit", "--dry-run", path}, env.configPath)
	if err != nil {
		t.Fatalf("submit --dry-run: %v", err)
	}
	requireContains(t, out, "not submitted")
	if len(env.server.Tickets()) != 0 {
		t.Fatal("dry run must not submit")
	}
}

func TestSubmitAndWatch(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "job.toml", exampleTicket)
	env.server.QueueOverviews(500, `{"status":"running"}`, `{"Status":"Finished"}`)

	out, _, err := runCLI(t, []string{"submit", "--watch", path}, env.configPath)
	if err != nil {
		t.Fatalf("submit --watch: %v", err)
	}
	requireContains(t, out, "as job 500")
	requireContains(t, out, "Finished after 2 of 3 polls")
	if env.server.Polls(500) != 2 {
		t.Fatalf("polls = %d, want 2", env.server.Polls(500))
	}
}

func TestSubmitRejectsDryRunWithWatch(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "job.toml", exampleTicket)

	_, _, err := runCLI(t, []string{"submit", "--dry-run", "--watch", path}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "dry-run") {
		t.Fatalf("expected flag conflict error, got %v", err)
	}
}
