package booking

import (
	"context"

	blockedRepo "arborbook/database/repository/blocked"
	bookingRepo "arborbook/database/repository/booking"
	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/models"
	"arborbook/services/scheduling"
)

// CreateBookingRequest is the customer-facing booking form payload.
type CreateBookingRequest struct {
	Service    models.ServiceType `json:"service" binding:"required"`
	Date       string             `json:"date" binding:"required"`
	Time       string             `json:"time" binding:"required"`
	Name       string             `json:"name" binding:"required"`
	Email      string             `json:"email" binding:"required,email"`
	Phone      string             `json:"phone" binding:"required"`
	Address    string             `json:"address" binding:"required"`
	Notes      string             `json:"notes"`
	CustomerID string             `json:"customerId"`
}

// BookingService drives the booking lifecycle on top of the scheduling engine.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, status models.BookingStatus, archived bool) ([]models.Booking, error)

	// BookJob schedules (or reschedules) the actual job for a booking whose
	// quote was accepted, blocking every day the job occupies.
	BookJob(ctx context.Context, id, jobDate, jobTime string) (*models.Booking, error)
	CandidateDates(ctx context.Context, id, start, end string) ([]string, error)

	UpdateStatus(ctx context.Context, id string, to models.BookingStatus) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)

	AttachQuote(ctx context.Context, id string, quote *models.Quote) (*models.Booking, error)
	Archive(ctx context.Context, id string, archived bool) error
	DeleteArchived(ctx context.Context, id string) error

	GetAvailability(ctx context.Context, start, end string) (models.AvailabilityIndex, error)
	ListBlockedDates(ctx context.Context, start, end string) ([]models.BlockedDate, error)
	BlockDate(ctx context.Context, date, note string) (*models.BlockedDate, error)
	AllowWeekendDate(ctx context.Context, date, note string) (*models.BlockedDate, error)
	UnblockDate(ctx context.Context, date string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Blocked   blockedRepo.BlockedRepository
	Scheduler schedulerRepo.SchedulerRepository
	Engine    scheduling.SchedulingEngine
}
