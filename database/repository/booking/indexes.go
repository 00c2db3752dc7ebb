// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for the availability range query over inquiries
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}, {Key: "archived", Value: 1}},
			Options: options.Index().SetName("date_status_archived_idx"),
		},
		// Compound index for the availability range query over scheduled jobs
		{
			Keys:    bson.D{{Key: "job_date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("job_date_status_idx"),
		},
		// Dashboard listing
		{
			Keys:    bson.D{{Key: "archived", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("archived_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
