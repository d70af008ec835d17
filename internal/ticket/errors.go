package ticket

import (
	"errors"
	"fmt"
)

// ErrTicketIncomplete marks a ticket that is missing a mandatory field and
// therefore cannot be serialized.
var ErrTicketIncomplete = errors.New("ticket incomplete")

// ValidationError reports which mandatory field of a ticket variant is missing.
type ValidationError struct {
	Ticket string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s incomplete: no %s has been set", ErrTicketIncomplete, e.Ticket, e.Field)
}

// Unwrap lets errors.Is match ErrTicketIncomplete.
func (e *ValidationError) Unwrap() error { return ErrTicketIncomplete }
