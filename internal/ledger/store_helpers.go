package ledger

import (
	"database/sql"
	"errors"
	"time"
)

const entryColumns = "id, job_id, ticket_name, assembly_line, priority, file_count, ticket_xml, status, overview_json, poll_count, submitted_at, updated_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id           int64
		jobID        int64
		ticketName   string
		assemblyLine sql.NullString
		priority     sql.NullInt64
		fileCount    int
		ticketXML    string
		statusStr    string
		overview     sql.NullString
		pollCount    int
		submittedRaw string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&id,
		&jobID,
		&ticketName,
		&assemblyLine,
		&priority,
		&fileCount,
		&ticketXML,
		&statusStr,
		&overview,
		&pollCount,
		&submittedRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:           id,
		JobID:        jobID,
		TicketName:   ticketName,
		AssemblyLine: assemblyLine.String,
		FileCount:    fileCount,
		TicketXML:    ticketXML,
		Status:       Status(statusStr),
		OverviewJSON: overview.String,
		PollCount:    pollCount,
	}
	if priority.Valid {
		p := int(priority.Int64)
		entry.Priority = &p
	}
	if submitted, err := parseTimeString(submittedRaw); err == nil {
		entry.SubmittedAt = submitted
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		entry.UpdatedAt = updated
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
