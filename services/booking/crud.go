package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "arborbook/database/repository/booking"
	"arborbook/models"
	"arborbook/services/scheduling"
	"arborbook/utils"
)

// newBookingID mints an opaque booking identifier, e.g. "ST-4f9a1c2e".
func newBookingID() string {
	return "ST-" + strings.Split(uuid.New().String(), "-")[0]
}

func (svc *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !models.ValidServiceType(req.Service) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown service %q", req.Service)}
	}
	if !models.ValidSlot(req.Time) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown time slot %q", req.Time)}
	}

	decision, err := svc.Engine.CheckSlot(ctx, req.Date, req.Time, scheduling.CheckOptions{})
	if err != nil {
		return nil, err
	}
	if !decision.Accepted {
		return nil, NewRejectionError(decision)
	}

	now := time.Now()
	b := &models.Booking{
		ID:         newBookingID(),
		CustomerID: req.CustomerID,
		Service:    req.Service,
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.StatusPending,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := svc.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	// A job reservation may have committed between the check and the insert;
	// verify the slot again and back the inquiry out if it is gone.
	decision, err = svc.Engine.CheckSlot(ctx, req.Date, req.Time, scheduling.CheckOptions{})
	if err != nil || !decision.Accepted {
		if delErr := svc.Bookings.Delete(ctx, b.ID); delErr != nil {
			logger.Sugar().Errorf("failed to back out booking %s: %v", b.ID, delErr)
		}
		if err != nil {
			return nil, err
		}
		return nil, NewRejectionError(decision)
	}
	utils.BumpAvailabilityVersion(ctx)

	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("service", string(b.Service)),
		zap.String("date", b.Date),
		zap.String("time", b.Time))
	return b, nil
}

func (svc *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return svc.Bookings.GetByID(ctx, id)
}

func (svc *DefaultBookingService) ListBookings(ctx context.Context, status models.BookingStatus, archived bool) ([]models.Booking, error) {
	return svc.Bookings.List(ctx, bookingRepo.BookingFilter{Status: status, Archived: &archived})
}

func (svc *DefaultBookingService) AttachQuote(ctx context.Context, id string, quote *models.Quote) (*models.Booking, error) {
	if quote.Restriction != nil {
		r := quote.Restriction
		if !models.ValidAllowedDays(r.AllowedDays) {
			return nil, &ValidationError{Message: fmt.Sprintf("unknown allowed-days mode %q", r.AllowedDays)}
		}
		if r.AllowedDays == models.AllowCustom && len(r.CustomDates) == 0 {
			return nil, &ValidationError{Message: "custom allowed-days mode requires custom dates"}
		}
		if r.JobDurationDays < 1 {
			r.JobDurationDays = 1
		}
	}
	quote.QuotedAt = time.Now()

	if err := svc.Bookings.SetQuote(ctx, id, quote); err != nil {
		return nil, err
	}
	return svc.Bookings.GetByID(ctx, id)
}

func (svc *DefaultBookingService) Archive(ctx context.Context, id string, archived bool) error {
	if err := svc.Bookings.SetArchived(ctx, id, archived); err != nil {
		return err
	}
	// Archived bookings drop out of the occupancy queries.
	utils.BumpAvailabilityVersion(ctx)
	return nil
}

func (svc *DefaultBookingService) DeleteArchived(ctx context.Context, id string) error {
	return svc.Bookings.DeleteArchived(ctx, id)
}
