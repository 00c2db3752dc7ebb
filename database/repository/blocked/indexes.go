// FILE: database/repository/blocked/indexes.go
package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the blocked_dates collection.
func (r *mongoBlockedRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// At most one block per (date, reason). Concurrent full-day-job
		// reservations for the same date race on this index; the loser gets
		// a duplicate-key error instead of a double booking.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "reason", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_date_reason"),
		},
		// Cancellation and reschedule look blocks up by owning booking.
		{
			Keys:    bson.D{{Key: "job_booking_id", Value: 1}},
			Options: options.Index().SetName("job_booking_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create blocked date indexes: %w", err)
	}
	return nil
}
