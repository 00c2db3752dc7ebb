// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"arborbook/database"
	"arborbook/models"
	"arborbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingFilter narrows List results.
type BookingFilter struct {
	Status   models.BookingStatus
	Archived *bool
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	SetQuote(ctx context.Context, id string, quote *models.Quote) error
	SetArchived(ctx context.Context, id string, archived bool) error
	DeleteArchived(ctx context.Context, id string) error

	// Delete removes a booking unconditionally. Used to back out an insert
	// that lost a race, not exposed through the API.
	Delete(ctx context.Context, id string) error

	// UpdateStatus performs a conditional transition: it only succeeds if the
	// booking is still in the expected status.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error

	// GetActiveInRange returns non-archived bookings in slot-occupying
	// statuses whose inquiry date falls in [start, end].
	GetActiveInRange(ctx context.Context, start, end string) ([]models.Booking, error)

	// GetJobsInRange returns non-archived bookings in slot-occupying statuses
	// whose scheduled job date falls in [start, end].
	GetJobsInRange(ctx context.Context, start, end string) ([]models.Booking, error)

	// ArchiveTerminalBefore archives completed/cancelled bookings last updated
	// before the cutoff. Idempotent; returns the number archived.
	ArchiveTerminalBefore(ctx context.Context, cutoff string) (int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("arborbook")
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("booking repo: %v", err)
	}
	return repo
}
