package scheduling

import (
	"context"
	"fmt"
	"time"

	"arborbook/models"
)

// CheckSlot runs the acceptance rules for a proposed (date, slot) in order;
// the first failing rule wins. No mutation happens here: on accept, the
// caller performs the reservation write through the scheduler repository,
// whose unique block index closes the check-then-write race.
func (se *DefaultSchedulingEngine) CheckSlot(ctx context.Context, date, slot string, opts CheckOptions) (Decision, error) {
	// 1. Malformed or past date.
	day, err := parseDate(date)
	if err != nil {
		return reject(ReasonInvalidDate, fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", date)), nil
	}
	now := se.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return reject(ReasonInvalidDate, fmt.Sprintf("date %s is in the past", date)), nil
	}

	idx, err := se.BuildIndex(ctx, date, date)
	if err != nil {
		return Decision{}, err
	}
	st := idx.State(date)

	// 2. Default weekend block, jobs only. Inquiry visits may happen on
	// weekends; actual jobs need an explicit override.
	if opts.JobScheduling && isWeekend(day) && !st.WeekendOverride && !opts.AllowWeekendOverride {
		return reject(ReasonWeekendBlocked, fmt.Sprintf("jobs are not scheduled on weekends; %s is a %s", date, day.Weekday())), nil
	}

	// 3. Jobs only ever run in the single job slot.
	if opts.JobScheduling && slot != models.JobSlot {
		return reject(ReasonInvalidJobTime, fmt.Sprintf("jobs are only scheduled at %s", models.JobSlot)), nil
	}

	// 4. Full-day block, manual or derived from another job.
	if st.ManualBlock {
		return reject(ReasonDateBlocked, fmt.Sprintf("%s is blocked", date)), nil
	}
	if st.FullDayJob && st.JobBookingID != opts.ExcludeBookingID {
		d := reject(ReasonDateBlocked, fmt.Sprintf("%s is fully booked by a scheduled job", date))
		d.JobBookingID = st.JobBookingID
		return d, nil
	}

	// 5. Slot conflict. A job excludes everything from its slot; inquiries
	// only conflict with an already-scheduled job, not with each other.
	if jobID, ok := st.JobSlots[slot]; ok && jobID != opts.ExcludeBookingID {
		d := reject(ReasonSlotConflict, fmt.Sprintf("slot %s on %s is held by a scheduled job", slot, date))
		d.JobBookingID = jobID
		return d, nil
	}
	if opts.JobScheduling && st.SlotCounts[slot] > 0 {
		return reject(ReasonSlotConflict, fmt.Sprintf("slot %s on %s already has bookings", slot, date)), nil
	}

	return accept(), nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
