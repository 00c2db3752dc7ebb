package scheduling

import (
	"context"
	"fmt"
	"time"

	"arborbook/models"
	"arborbook/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// parseDate parses a "YYYY-MM-DD" string in server local time.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// BuildIndex aggregates active bookings, scheduled jobs, and blocked-date
// records in [start, end] into a per-date occupancy map.
func (se *DefaultSchedulingEngine) BuildIndex(ctx context.Context, start, end string) (models.AvailabilityIndex, error) {
	logger := utils.GetLogger()

	startDay, err := parseDate(start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", start, err)
	}
	endDay, err := parseDate(end)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", end, err)
	}
	if startDay.After(endDay) {
		return nil, fmt.Errorf("range start %s is after end %s", start, end)
	}

	idx := make(models.AvailabilityIndex)
	entry := func(date string) models.SlotState {
		st, ok := idx[date]
		if !ok {
			st = models.SlotState{Date: date, SlotCounts: make(map[string]int)}
		}
		return st
	}

	// Inquiry-stage occupancy, counted per (date, time).
	bookings, err := se.Bookings.GetActiveInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, b := range bookings {
		st := entry(b.Date)
		st.SlotCounts[b.Time]++
		idx[b.Date] = st
	}

	// Scheduled jobs claim their slot exclusively.
	jobs, err := se.Bookings.GetJobsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, j := range jobs {
		st := entry(j.JobDate)
		if st.JobSlots == nil {
			st.JobSlots = make(map[string]string)
		}
		st.JobSlots[j.JobTime] = j.ID
		idx[j.JobDate] = st
	}

	blocks, err := se.Blocked.GetInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, blk := range blocks {
		st := entry(blk.Date)
		switch blk.Reason {
		case models.BlockFullDayJob:
			st.Blocked = true
			st.FullDayJob = true
			st.JobBookingID = blk.JobBookingID
		case models.BlockManual:
			st.Blocked = true
			st.ManualBlock = true
		case models.BlockUnblockedWeekend:
			st.WeekendOverride = true
		default:
			logger.Warn("skipping block with unknown reason",
				zap.String("date", blk.Date), zap.String("reason", string(blk.Reason)))
			continue
		}
		idx[blk.Date] = st
	}

	return idx, nil
}
