package models

import "time"

// AllowedDays enumerates the day-of-week modes a quote can restrict
// job scheduling to.
type AllowedDays string

const (
	AllowWeekdays AllowedDays = "weekdays"
	AllowWeekends AllowedDays = "weekends"
	AllowBoth     AllowedDays = "both"
	AllowCustom   AllowedDays = "custom"
)

// ValidAllowedDays reports whether d is a defined mode.
func ValidAllowedDays(d AllowedDays) bool {
	switch d {
	case AllowWeekdays, AllowWeekends, AllowBoth, AllowCustom:
		return true
	}
	return false
}

// BookingRestriction narrows the dates a customer may pick for job scheduling.
type BookingRestriction struct {
	AllowedDays     AllowedDays `bson:"allowed_days" json:"allowed_days"`
	CustomDates     []string    `bson:"custom_dates,omitempty" json:"custom_dates,omitempty"` // used only when AllowedDays == custom
	JobDurationDays int         `bson:"job_duration_days" json:"job_duration_days"`           // consecutive calendar days the job occupies
}

// Duration returns the job length in days, defaulting to a single day.
func (r *BookingRestriction) Duration() int {
	if r == nil || r.JobDurationDays < 1 {
		return 1
	}
	return r.JobDurationDays
}

// AllowsWeekends reports whether the restriction permits weekend dates at all.
// Custom date lists are taken at face value, weekends included.
func (r *BookingRestriction) AllowsWeekends() bool {
	if r == nil {
		return false
	}
	switch r.AllowedDays {
	case AllowWeekends, AllowBoth, AllowCustom:
		return true
	}
	return false
}

// Quote is the admin's priced offer for a booking, optionally carrying a
// booking-date restriction for the eventual job.
type Quote struct {
	Amount      float64             `bson:"amount" json:"amount"`
	Details     string              `bson:"details,omitempty" json:"details,omitempty"`
	Restriction *BookingRestriction `bson:"restriction,omitempty" json:"restriction,omitempty"`
	QuotedAt    time.Time           `bson:"quoted_at" json:"quoted_at"`
}
