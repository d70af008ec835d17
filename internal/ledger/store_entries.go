package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"amendo/internal/services"
)

// Record stores a freshly accepted submission with StatusSubmitted. Recording
// the same job ID twice fails.
func (s *Store) Record(ctx context.Context, sub Submission) (*Entry, error) {
	if sub.JobID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "ledger", "record", fmt.Sprintf("invalid job id %d", sub.JobID), nil)
	}
	if len(sub.TicketXML) == 0 {
		return nil, services.Wrap(services.ErrValidation, "ledger", "record", "ticket xml is empty", nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var priority any
	if sub.Priority != nil {
		priority = *sub.Priority
	}
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO entries (
            job_id, ticket_name, assembly_line, priority, file_count,
            ticket_xml, status, poll_count, submitted_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		sub.JobID,
		sub.TicketName,
		nullableString(sub.AssemblyLine),
		priority,
		sub.FileCount,
		string(sub.TicketXML),
		StatusSubmitted,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry for job %d: %w", sub.JobID, err)
	}
	return s.GetByJobID(ctx, sub.JobID)
}

// GetByJobID fetches an entry. A missing entry yields (nil, nil).
func (s *Store) GetByJobID(ctx context.Context, jobID int64) (*Entry, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+entryColumns+` FROM entries WHERE job_id = ?`, jobID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns entries filtered by status set (or all entries when no status
// is provided), newest submission first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + entryColumns + ` FROM entries`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		for _, status := range statuses {
			args = append(args, status)
		}
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RecordOverview stores the latest overview for a job, bumps its poll count
// and updates its status.
func (s *Store) RecordOverview(ctx context.Context, jobID int64, status Status, raw []byte) (*Entry, error) {
	if _, ok := ParseStatus(string(status)); !ok {
		return nil, services.Wrap(services.ErrValidation, "ledger", "record overview", fmt.Sprintf("unknown status %q", status), nil)
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE entries
         SET status = ?, overview_json = ?, poll_count = poll_count + 1, updated_at = ?
         WHERE job_id = ?`,
		status,
		nullableString(strings.TrimSpace(string(raw))),
		time.Now().UTC().Format(time.RFC3339Nano),
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("record overview for job %d: %w", jobID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, services.Wrap(services.ErrNotFound, "ledger", "record overview", fmt.Sprintf("job %d is not in the ledger", jobID), nil)
	}
	return s.GetByJobID(ctx, jobID)
}

// Remove deletes a job's entry and reports whether one existed.
func (s *Store) Remove(ctx context.Context, jobID int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM entries WHERE job_id = ?`, jobID)
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove entry rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of entries grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM entries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}
