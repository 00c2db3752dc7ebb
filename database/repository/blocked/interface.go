// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"

	"arborbook/database"
	"arborbook/models"
	"arborbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type BlockedRepository interface {
	Create(ctx context.Context, block *models.BlockedDate) error
	GetByDate(ctx context.Context, date string) ([]models.BlockedDate, error)
	GetInRange(ctx context.Context, start, end string) ([]models.BlockedDate, error)
	DeleteByDateAndReason(ctx context.Context, date string, reason models.BlockReason) error
	DeleteByJobBookingID(ctx context.Context, bookingID string) error
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a new MongoDB BlockedRepository. The unique
// (date, reason) index it ensures is what makes concurrent full-day-job
// reservations for the same date mutually exclusive.
func NewMongoBlockedRepo() BlockedRepository {
	db := database.MongoClient.Database("arborbook")
	repo := &mongoBlockedRepo{
		coll: db.Collection("blocked_dates"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("blocked repo: %v", err)
	}
	return repo
}
