package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"amendo/internal/ledger"
	"amendo/internal/services"
	"amendo/internal/testsupport"
)

func TestOverviewRecordsKnownJob(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenLedger(t, env.cfg)
	testsupport.RecordJob(t, store, 42, "Known")
	env.server.QueueOverviews(42, `{"status":"RUNNING","progress":50}`)

	out, _, err := runCLI(t, []string{"overview", "42"}, env.configPath)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	requireContains(t, out, "Job 42")
	requireContains(t, out, "Running (RUNNING)")

	entry, err := store.GetByJobID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByJobID: %v", err)
	}
	if entry.Status != ledger.StatusRunning || entry.PollCount != 1 {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestOverviewJSONForUnknownJob(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.QueueOverviews(77, `{"state":"done","files":["a.pdf"]}`)

	out, _, err := runCLI(t, []string{"overview", "--json", "77"}, env.configPath)
	if err != nil {
		t.Fatalf("overview --json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded["state"] != "done" {
		t.Fatalf("unexpected overview %v", decoded)
	}
}

func TestOverviewWarnsWhenNotInLedger(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.QueueOverviews(78, `{"status":"queued"}`)

	out, _, err := runCLI(t, []string{"overview", "78"}, env.configPath)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	requireContains(t, out, "overview not recorded")
}

func TestOverviewTransportErrorExitCode(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"overview", "9"}, env.configPath)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if services.ExitCode(err) != 3 {
		t.Fatalf("exit code = %d, want 3", services.ExitCode(err))
	}
}

func TestInvalidJobID(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, args := range [][]string{{"overview", "abc"}, {"watch", "0"}} {
		_, _, err := runCLI(t, args, env.configPath)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%v: expected validation error, got %v", args, err)
		}
	}
}

func TestWatchCommandBounded(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenLedger(t, env.cfg)
	testsupport.RecordJob(t, store, 43, "Slow")
	env.server.QueueOverviews(43, `{"status":"processing"}`)

	out, _, err := runCLI(t, []string{"watch", "43"}, env.configPath)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	requireContains(t, out, "Running after 3 of 3 polls")
}

func TestWatchCommandUnknownJob(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"watch", "44"}, env.configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestJobsListing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"jobs"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	requireContains(t, out, "No jobs recorded")

	store := testsupport.MustOpenLedger(t, env.cfg)
	testsupport.RecordJob(t, store, 1, "First")
	testsupport.RecordJob(t, store, 2, "Second")
	if _, err := store.RecordOverview(context.Background(), 2, ledger.StatusFailed, []byte(`{"status":"error"}`)); err != nil {
		t.Fatalf("RecordOverview: %v", err)
	}

	out, _, err = runCLI(t, []string{"jobs"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	requireContains(t, out, "ASSEMBLY LINE")
	requireContains(t, out, "First")
	requireContains(t, out, "Failed")

	out, _, err = runCLI(t, []string{"jobs", "--status", "failed", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs --json: %v", err)
	}
	var views []jobView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode jobs json: %v\n%s", err, out)
	}
	if len(views) != 1 || views[0].JobID != 2 || views[0].Status != "failed" || views[0].PollCount != 1 {
		t.Fatalf("unexpected views %+v", views)
	}

	if _, _, err := runCLI(t, []string{"jobs", "--status", "paused"}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestJobsRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenLedger(t, env.cfg)
	testsupport.RecordJob(t, store, 5, "Keep")
	testsupport.RecordJob(t, store, 6, "Drop")

	out, _, err := runCLI(t, []string{"jobs", "remove", "6", "9"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs remove: %v", err)
	}
	requireContains(t, out, "Job 6:")
	requireContains(t, out, "[OK] removed")
	requireContains(t, out, "[WARN] not in the ledger")

	if entry, err := store.GetByJobID(context.Background(), 6); err != nil || entry != nil {
		t.Fatalf("job 6 still present: %v, %v", entry, err)
	}
	if entry, err := store.GetByJobID(context.Background(), 5); err != nil || entry == nil {
		t.Fatalf("job 5 missing: %v, %v", entry, err)
	}

	if _, _, err := runCLI(t, []string{"jobs", "remove", "6"}, env.configPath); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for a second removal, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"jobs", "remove", "abc"}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOverviewJSONKeepsServerKeyOrder(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.QueueOverviews(79, `{"zeta":1,"status":"running","alpha":2}`)

	out, _, err := runCLI(t, []string{"overview", "--json", "79"}, env.configPath)
	if err != nil {
		t.Fatalf("overview --json: %v", err)
	}
	z, s, a := strings.Index(out, `"zeta"`), strings.Index(out, `"status"`), strings.Index(out, `"alpha"`)
	if z < 0 || !(z < s && s < a) {
		t.Fatalf("keys reordered:\n%s", out)
	}
}
