package models

import "time"

// BlockReason enumerates why a date is (or is explicitly not) unavailable.
type BlockReason string

const (
	// BlockManual marks a date an admin blocked by hand.
	BlockManual BlockReason = "manual_block"
	// BlockFullDayJob marks a date fully occupied by a scheduled job. Derived
	// from a booking's job status; created and removed with it transactionally.
	BlockFullDayJob BlockReason = "full_day_job"
	// BlockUnblockedWeekend is a negative marker: this weekend date is
	// explicitly bookable despite the default weekend policy.
	BlockUnblockedWeekend BlockReason = "unblocked_weekend"
)

// BlockedDate represents a date rendered fully unavailable, or a weekend
// date explicitly opened up.
type BlockedDate struct {
	ID           string      `bson:"id" json:"id"`
	Date         string      `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason       BlockReason `bson:"reason" json:"reason"`
	JobBookingID string      `bson:"job_booking_id,omitempty" json:"job_booking_id,omitempty"` // set only for full_day_job
	Note         string      `bson:"note,omitempty" json:"note,omitempty"`                     // informational only
	BlockedAt    time.Time   `bson:"blocked_at" json:"blocked_at"`
}
