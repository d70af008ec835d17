package ledger

import (
	"strings"
	"time"
)

// Status is the coarse state of a submitted job as last observed.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusRunning   Status = "running"
	StatusFinished  Status = "finished"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

var allStatuses = []Status{
	StatusSubmitted,
	StatusRunning,
	StatusFinished,
	StatusFailed,
	StatusUnknown,
}

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts a user-supplied name into a Status.
func ParseStatus(value string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further state changes are expected.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusFailed
}

// Submission describes a ticket that the server accepted.
type Submission struct {
	JobID        int64
	TicketName   string
	AssemblyLine string
	Priority     *int
	FileCount    int
	TicketXML    []byte
}

// Entry is one ledger row.
type Entry struct {
	ID           int64
	JobID        int64
	TicketName   string
	AssemblyLine string
	Priority     *int
	FileCount    int
	TicketXML    string
	Status       Status
	OverviewJSON string
	PollCount    int
	SubmittedAt  time.Time
	UpdatedAt    time.Time
}

// HasOverview reports whether any overview has been recorded.
func (e *Entry) HasOverview() bool {
	return e != nil && e.OverviewJSON != ""
}
