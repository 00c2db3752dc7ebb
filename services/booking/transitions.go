package booking

import (
	"context"

	"go.uber.org/zap"

	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/models"
	"arborbook/utils"
)

// UpdateStatus moves a booking along the lifecycle, enforcing the state
// machine. Cancellation goes through Cancel so the derived blocks are
// removed in the same transaction.
func (svc *DefaultBookingService) UpdateStatus(ctx context.Context, id string, to models.BookingStatus) (*models.Booking, error) {
	if to == models.StatusCancelled {
		return svc.Cancel(ctx, id)
	}

	b, err := svc.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(b.Status, to) {
		return nil, &TransitionError{From: b.Status, To: to}
	}

	if err := svc.Bookings.UpdateStatus(ctx, id, b.Status, to); err != nil {
		return nil, err
	}
	utils.BumpAvailabilityVersion(ctx)

	utils.GetLogger().Info("booking status updated",
		zap.String("bookingID", id),
		zap.String("from", string(b.Status)),
		zap.String("to", string(to)))
	return svc.Bookings.GetByID(ctx, id)
}

// Cancel transitions the booking to cancelled and deletes every full-day
// block it owns, as one write unit.
func (svc *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	b, err := svc.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, &TransitionError{From: b.Status, To: models.StatusCancelled}
	}

	if err := svc.Scheduler.CancelBooking(ctx, id); err != nil {
		if err == schedulerRepo.ErrNotSchedulable {
			return nil, &TransitionError{From: b.Status, To: models.StatusCancelled}
		}
		return nil, err
	}
	utils.BumpAvailabilityVersion(ctx)

	utils.GetLogger().Info("booking cancelled", zap.String("bookingID", id))
	return svc.Bookings.GetByID(ctx, id)
}
