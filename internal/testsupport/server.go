package testsupport

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeServer imitates the workflow server REST endpoints used by the client.
type FakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	nextJobID int64
	tickets   []string
	overviews map[int64][]string
	polls     map[int64]int
	apiKeys   []string
}

// NewFakeServer starts a server that assigns job IDs from firstJobID upwards
// and serves files below resultsDir at /results/.
func NewFakeServer(t testing.TB, firstJobID int64, resultsDir string) *FakeServer {
	t.Helper()

	fake := &FakeServer{
		nextJobID: firstJobID,
		overviews: make(map[int64][]string),
		polls:     make(map[int64]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ws/rest/jobstart/ticket", fake.handleStart)
	mux.HandleFunc("GET /ws/rest/job/{id}/overview", fake.handleOverview)
	if resultsDir != "" {
		mux.Handle("GET /results/", http.StripPrefix("/results/", http.FileServer(http.Dir(filepath.Clean(resultsDir)))))
	}
	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Close)
	return fake
}

// QueueOverviews sets the overview bodies returned for jobID, one per poll.
// The last body repeats once the sequence is exhausted.
func (f *FakeServer) QueueOverviews(jobID int64, bodies ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overviews[jobID] = append(f.overviews[jobID], bodies...)
}

// Tickets returns the ticket bodies received so far.
func (f *FakeServer) Tickets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.tickets))
	copy(out, f.tickets)
	return out
}

// Polls returns how many overview requests jobID received.
func (f *FakeServer) Polls(jobID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls[jobID]
}

// APIKeys returns the X-API-KEY header of every request in arrival order.
func (f *FakeServer) APIKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.apiKeys))
	copy(out, f.apiKeys)
	return out
}

func (f *FakeServer) handleStart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-KEY"))
	f.tickets = append(f.tickets, string(body))
	id := f.nextJobID
	f.nextJobID++
	f.mu.Unlock()

	_, _ = fmt.Fprintf(w, "%d", id)
}

func (f *FakeServer) handleOverview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-KEY"))
	bodies := f.overviews[id]
	poll := f.polls[id]
	f.polls[id] = poll + 1
	f.mu.Unlock()

	if len(bodies) == 0 {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if poll >= len(bodies) {
		poll = len(bodies) - 1
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, strings.TrimSpace(bodies[poll]))
}
