// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arborbook/models"
)

func activeStatusFilter() bson.M {
	statuses := make([]models.BookingStatus, len(models.ActiveStatuses))
	copy(statuses, models.ActiveStatuses)
	return bson.M{"$in": statuses}
}

func (r *mongoBookingRepo) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Archived != nil {
		query["archived"] = *filter.Archived
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) GetActiveInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{
		"date":     bson.M{"$gte": start, "$lte": end},
		"status":   activeStatusFilter(),
		"archived": false,
	}
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bookings in range: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode active bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) GetJobsInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{
		"job_date": bson.M{"$gte": start, "$lte": end},
		"status":   activeStatusFilter(),
		"archived": false,
	}
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs in range: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled jobs: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ArchiveTerminalBefore(ctx context.Context, cutoff string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cutoffTime, err := time.ParseInLocation("2006-01-02", cutoff, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid archive cutoff %q: %w", cutoff, err)
	}

	res, err := r.coll.UpdateMany(ctx,
		bson.M{
			"status":     bson.M{"$in": []models.BookingStatus{models.StatusCompleted, models.StatusCancelled}},
			"archived":   false,
			"updated_at": bson.M{"$lt": cutoffTime},
		},
		bson.M{"$set": bson.M{"archived": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to archive terminal bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
