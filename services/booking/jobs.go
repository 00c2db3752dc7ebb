package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/models"
	"arborbook/services/scheduling"
	"arborbook/utils"
)

const dateLayout = "2006-01-02"

// BookJob schedules the actual job for a booking. Every calendar day the job
// occupies is checked independently, then the booking transition and the
// full-day blocks are written in one transaction. Calling it again for a
// booking that already has a job moves the job and its blocks atomically.
func (svc *DefaultBookingService) BookJob(ctx context.Context, id, jobDate, jobTime string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := svc.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Archived {
		return nil, &ValidationError{Message: fmt.Sprintf("booking %s is archived", id)}
	}

	var restriction *models.BookingRestriction
	if b.Quote != nil {
		restriction = b.Quote.Restriction
	}

	start, err := time.ParseInLocation(dateLayout, jobDate, time.Local)
	if err != nil {
		return nil, NewRejectionError(scheduling.Decision{
			Reason:  scheduling.ReasonInvalidDate,
			Message: fmt.Sprintf("job date %q is not a valid YYYY-MM-DD date", jobDate),
		})
	}

	opts := scheduling.CheckOptions{
		JobScheduling:        true,
		AllowWeekendOverride: restriction.AllowsWeekends(),
		ExcludeBookingID:     id,
	}

	now := time.Now()
	duration := restriction.Duration()
	blocks := make([]models.BlockedDate, 0, duration)
	for i := 0; i < duration; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		if restriction != nil && !scheduling.DayAllowed(restriction, date) {
			return nil, NewRejectionError(scheduling.Decision{
				Reason:  scheduling.ReasonInvalidDate,
				Message: fmt.Sprintf("date %s is not permitted by the quote's booking restriction", date),
			})
		}
		decision, err := svc.Engine.CheckSlot(ctx, date, jobTime, opts)
		if err != nil {
			return nil, err
		}
		if !decision.Accepted {
			return nil, NewRejectionError(decision)
		}
		blocks = append(blocks, models.BlockedDate{
			ID:           uuid.New().String(),
			Date:         date,
			Reason:       models.BlockFullDayJob,
			JobBookingID: id,
			Note:         fmt.Sprintf("Full day held for job %s", id),
			BlockedAt:    now,
		})
	}

	if err := svc.Scheduler.ReserveJob(ctx, id, jobDate, jobTime, blocks); err != nil {
		switch err {
		case schedulerRepo.ErrDateTaken:
			// Lost the race to another reservation between check and write.
			return nil, NewRejectionError(scheduling.Decision{
				Reason:  scheduling.ReasonSlotConflict,
				Message: fmt.Sprintf("slot %s on %s was just taken", jobTime, jobDate),
			})
		case schedulerRepo.ErrNotSchedulable:
			return nil, &TransitionError{From: b.Status, To: models.StatusPendingBooking}
		default:
			return nil, err
		}
	}
	utils.BumpAvailabilityVersion(ctx)

	logger.Info("job scheduled",
		zap.String("bookingID", id),
		zap.String("jobDate", jobDate),
		zap.String("jobTime", jobTime),
		zap.Int("durationDays", duration))

	return svc.Bookings.GetByID(ctx, id)
}

// CandidateDates returns the dates in [start, end] on which this booking's
// job could start, honoring its quote restriction and current availability.
func (svc *DefaultBookingService) CandidateDates(ctx context.Context, id, start, end string) ([]string, error) {
	b, err := svc.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var restriction *models.BookingRestriction
	if b.Quote != nil {
		restriction = b.Quote.Restriction
	}

	candidates, err := scheduling.DatesInRange(start, end)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid date range: %v", err)}
	}
	return svc.Engine.FilterCandidateDates(ctx, restriction, candidates)
}
