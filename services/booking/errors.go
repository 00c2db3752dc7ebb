package booking

import (
	"fmt"

	"arborbook/models"
	"arborbook/services/scheduling"
)

// RejectionError carries a scheduling rejection across the service boundary.
// Handlers translate it to a 409 with the wire reason code.
type RejectionError struct {
	Code         scheduling.ReasonCode
	Message      string
	JobBookingID string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRejectionError wraps a rejected Decision.
func NewRejectionError(d scheduling.Decision) error {
	return &RejectionError{
		Code:         d.Reason,
		Message:      d.Message,
		JobBookingID: d.JobBookingID,
	}
}

// ValidationError reports malformed input, surfaced as a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransitionError reports a status-machine violation.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}
