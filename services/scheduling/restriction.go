package scheduling

import (
	"context"

	"arborbook/models"
)

// DayAllowed applies the restriction's day-of-week/custom-date rule to a
// single date. A nil restriction falls back to the weekday default;
// malformed dates are simply not allowed.
func DayAllowed(r *models.BookingRestriction, date string) bool {
	day, err := parseDate(date)
	if err != nil {
		return false
	}
	if r == nil {
		return !isWeekend(day) // no restriction: default job policy applies
	}
	switch r.AllowedDays {
	case models.AllowWeekdays:
		return !isWeekend(day)
	case models.AllowWeekends:
		return isWeekend(day)
	case models.AllowBoth:
		return true
	case models.AllowCustom:
		for _, d := range r.CustomDates {
			if d == date {
				return true
			}
		}
		return false
	}
	return false
}

// FilterCandidateDates keeps only the candidates on which a job honoring the
// restriction could start. For multi-day jobs, every one of the consecutive
// occupied dates must independently pass both the day rule and the conflict
// check.
func (se *DefaultSchedulingEngine) FilterCandidateDates(ctx context.Context, r *models.BookingRestriction, candidates []string) ([]string, error) {
	opts := CheckOptions{
		JobScheduling:        true,
		AllowWeekendOverride: r.AllowsWeekends(),
	}

	allowed := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		start, err := parseDate(candidate)
		if err != nil {
			continue
		}

		ok := true
		for i := 0; i < r.Duration(); i++ {
			date := start.AddDate(0, 0, i).Format(dateLayout)
			if !DayAllowed(r, date) {
				ok = false
				break
			}
			decision, err := se.CheckSlot(ctx, date, models.JobSlot, opts)
			if err != nil {
				return nil, err
			}
			if !decision.Accepted {
				ok = false
				break
			}
		}
		if ok {
			allowed = append(allowed, candidate)
		}
	}
	return allowed, nil
}

// DatesInRange expands an inclusive date range into its calendar dates,
// used to seed candidate lists for the resolver.
func DatesInRange(start, end string) ([]string, error) {
	startDay, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	endDay, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
