package amendo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"amendo/internal/logging"
	"amendo/internal/services"
)

const (
	startTicketPath  = "/ws/rest/jobstart/ticket"
	overviewPathTmpl = "/ws/rest/job/%d/overview"
	overviewBody     = `{"query":"","variables":{}}`
)

// Ticket is a job ticket that can render itself.
type Ticket interface {
	Name() string
	XML() ([]byte, error)
}

// StartJobTicket submits t and returns the job ID assigned by the server.
// A response body that is not a decimal integer yields job ID 0.
func (c *Client) StartJobTicket(ctx context.Context, t Ticket) (int64, error) {
	ctx = services.WithTicket(ctx, t.Name())
	body, err := t.XML()
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, component, "start job ticket", "render ticket", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/xml")
	resp, err := c.Request(ctx, http.MethodPost, c.endpoint(startTicketPath), headers, body)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, component, "start job ticket", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, component, "start job ticket", "read response", err)
	}

	logger := logging.WithContext(ctx, c.logger)
	jobID, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		logger.Warn("job start response is not a job id", logging.Args(
			logging.String("body", truncate(string(raw), 200)),
		)...)
		return 0, nil
	}

	logger.Info("created amendo job", logging.Args(logging.Int64(logging.FieldJobID, jobID))...)
	return jobID, nil
}

// Overview is the decoded job overview. The server's schema is not
// interpreted beyond JSON decoding.
type Overview struct {
	JobID  int64
	Fields map[string]any
	Raw    json.RawMessage
}

// JobOverview fetches the overview of one job.
func (c *Client) JobOverview(ctx context.Context, jobID int64) (Overview, error) {
	ctx = services.WithJobID(ctx, jobID)
	operation := fmt.Sprintf("job overview %d", jobID)

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	resp, err := c.Request(ctx, http.MethodGet, c.endpoint(fmt.Sprintf(overviewPathTmpl, jobID)), headers, []byte(overviewBody))
	if err != nil {
		return Overview{}, services.Wrap(services.ErrTransport, component, operation, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Overview{}, services.Wrap(services.ErrTransport, component, operation, "read response", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Overview{}, services.Wrap(services.ErrTransport, component, operation, "decode response", err)
	}
	return Overview{JobID: jobID, Fields: fields, Raw: json.RawMessage(raw)}, nil
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
