// File: database/repository/scheduler/interface.go
package schedulerRepo

import (
	"context"
	"errors"

	"arborbook/database"
	"arborbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDateTaken is returned when another job already holds one of the
// requested dates (unique index collision inside the transaction).
var ErrDateTaken = errors.New("a requested date is already held by another job")

// ErrNotSchedulable is returned when the booking is missing, archived, or
// not in a status from which a job can be scheduled or released.
var ErrNotSchedulable = errors.New("booking is not in a schedulable state")

// SchedulerRepository performs the write side of job scheduling. Every method
// is a single Mongo transaction: the booking mutation and its derived
// full-day blocks commit or abort together.
type SchedulerRepository interface {
	// ReserveJob sets the booking's job date/time, transitions it to
	// pending-booking, and replaces its full_day_job blocks with one block
	// per date in blockDates. Safe to call again for a reschedule.
	ReserveJob(ctx context.Context, bookingID, jobDate, jobTime string, blocks []models.BlockedDate) error

	// CancelBooking transitions a non-terminal booking to cancelled and
	// removes every block derived from it.
	CancelBooking(ctx context.Context, bookingID string) error
}

type mongoSchedulerRepo struct {
	bookingColl *mongo.Collection
	blockedColl *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new MongoDB SchedulerRepository.
func NewMongoSchedulerRepo() SchedulerRepository {
	db := database.MongoClient.Database("arborbook")
	return &mongoSchedulerRepo{
		bookingColl: db.Collection("bookings"),
		blockedColl: db.Collection("blocked_dates"),
	}
}
