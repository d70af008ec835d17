package testsupport

import (
	"context"
	"testing"

	"amendo/internal/config"
	"amendo/internal/ledger"
)

// MustOpenLedger opens a ledger.Store for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordJob inserts a minimal submission for jobID.
func RecordJob(t testing.TB, store *ledger.Store, jobID int64, ticketName string) *ledger.Entry {
	t.Helper()

	entry, err := store.Record(context.Background(), ledger.Submission{
		JobID:        jobID,
		TicketName:   ticketName,
		AssemblyLine: "Test-AssemblyLine",
		FileCount:    1,
		TicketXML:    []byte("<Job/>"),
	})
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return entry
}
