package scheduling

import (
	"context"
	"time"

	blockedRepo "arborbook/database/repository/blocked"
	bookingRepo "arborbook/database/repository/booking"
	"arborbook/models"
)

// CheckOptions tunes a slot check.
type CheckOptions struct {
	// JobScheduling applies the job rules: weekend policy, the single job
	// slot, and exclusive occupancy. Inquiry bookings leave it false.
	JobScheduling bool
	// AllowWeekendOverride skips the default weekend block, used when a
	// quote restriction explicitly permits weekend dates.
	AllowWeekendOverride bool
	// ExcludeBookingID ignores full-day blocks owned by this booking, so a
	// reschedule does not collide with its own reservation.
	ExcludeBookingID string
}

// SchedulingEngine is the availability and conflict rule engine.
type SchedulingEngine interface {
	// BuildIndex aggregates bookings and blocked dates over the inclusive
	// range into a per-date slot occupancy map. Pure read.
	BuildIndex(ctx context.Context, start, end string) (models.AvailabilityIndex, error)

	// CheckSlot decides whether (date, slot) is bookable. Business
	// rejections come back in the Decision; the error is non-nil only for
	// store faults.
	CheckSlot(ctx context.Context, date, slot string, opts CheckOptions) (Decision, error)

	// FilterCandidateDates narrows candidates to dates on which a job
	// honoring the quote restriction could start.
	FilterCandidateDates(ctx context.Context, r *models.BookingRestriction, candidates []string) ([]string, error)
}

// DefaultSchedulingEngine implements SchedulingEngine over the Mongo repos.
type DefaultSchedulingEngine struct {
	Bookings bookingRepo.BookingRepository
	Blocked  blockedRepo.BlockedRepository

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}
