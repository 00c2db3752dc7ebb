// File: database/repository/blocked/crud.go
package blockedRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"arborbook/models"
)

// ErrDateTaken is returned when a block already exists for (date, reason).
var ErrDateTaken = errors.New("date already carries a block with this reason")

// ErrNotFound is returned when no block matches the given date and reason.
var ErrNotFound = errors.New("blocked date not found")

func (r *mongoBlockedRepo) Create(ctx context.Context, block *models.BlockedDate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, block)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDateTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert blocked date %s: %w", block.Date, err)
	}
	return nil
}

func (r *mongoBlockedRepo) GetByDate(ctx context.Context, date string) ([]models.BlockedDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedDate
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	return blocks, nil
}

func (r *mongoBlockedRepo) GetInRange(ctx context.Context, start, end string) ([]models.BlockedDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks in range: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedDate
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	return blocks, nil
}

func (r *mongoBlockedRepo) DeleteByDateAndReason(ctx context.Context, date string, reason models.BlockReason) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"date": date, "reason": reason})
	if err != nil {
		return fmt.Errorf("failed to delete block for %s: %w", date, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBlockedRepo) DeleteByJobBookingID(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"job_booking_id": bookingID}); err != nil {
		return fmt.Errorf("failed to delete job blocks for booking %s: %w", bookingID, err)
	}
	return nil
}
