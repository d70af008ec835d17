package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"amendo/internal/ledger"
	"amendo/internal/services"
)

func parseJobID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.Wrap(services.ErrValidation, "cli", "parse job id", fmt.Sprintf("invalid job id %q", value), nil)
	}
	return id, nil
}

func displayStatus(status ledger.Status) string {
	if status == "" {
		return "-"
	}
	return cases.Title(language.Und).String(string(status))
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatPriority(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
