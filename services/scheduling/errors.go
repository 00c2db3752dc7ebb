package scheduling

import "errors"

// ReasonCode identifies why a (date, slot) request was rejected. These are
// expected business-rule outcomes, not errors; they are returned to the
// caller in a Decision and never raised as Go errors.
type ReasonCode string

const (
	ReasonInvalidDate    ReasonCode = "invalid_date"
	ReasonWeekendBlocked ReasonCode = "weekend_blocked"
	ReasonInvalidJobTime ReasonCode = "invalid_job_time"
	ReasonDateBlocked    ReasonCode = "date_blocked"
	ReasonSlotConflict   ReasonCode = "time_slot_conflict"

	// ReasonStoreUnavailable is the wire code for infrastructure faults.
	// It surfaces as a 5xx, never as "available".
	ReasonStoreUnavailable ReasonCode = "store_unavailable"
)

// ErrStoreUnavailable wraps any repository failure so callers can tell
// infrastructure faults apart from business rejections.
var ErrStoreUnavailable = errors.New("booking store unavailable")

// Decision is the outcome of a slot check.
type Decision struct {
	Accepted bool       `json:"accepted"`
	Reason   ReasonCode `json:"reason,omitempty"`
	Message  string     `json:"message,omitempty"`
	// JobBookingID identifies the job whose full-day block caused a
	// date_blocked rejection, for admin-facing messaging.
	JobBookingID string `json:"jobBookingId,omitempty"`
}

func accept() Decision {
	return Decision{Accepted: true}
}

func reject(code ReasonCode, msg string) Decision {
	return Decision{Reason: code, Message: msg}
}
