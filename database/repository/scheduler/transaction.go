// File: database/repository/scheduler/transaction.go
package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"arborbook/models"
)

// schedulableStatuses are the statuses a job can be scheduled from. A booking
// already in pending-booking may be rescheduled; confirmed is the legacy
// status the old tooling wrote for accepted quotes.
var schedulableStatuses = []models.BookingStatus{
	models.StatusQuoteAccepted,
	models.StatusPendingBooking,
	models.StatusConfirmed,
}

func (repo *mongoSchedulerRepo) runInTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

func (repo *mongoSchedulerRepo) ReserveJob(
	ctx context.Context,
	bookingID, jobDate, jobTime string,
	blocks []models.BlockedDate,
) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":       bookingID,
			"status":   bson.M{"$in": schedulableStatuses},
			"archived": false,
		}
		update := bson.M{
			"$set": bson.M{
				"job_date":   jobDate,
				"job_time":   jobTime,
				"status":     models.StatusPendingBooking,
				"updated_at": time.Now(),
			},
		}
		res, err := repo.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("job transition failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotSchedulable
		}

		// A reschedule frees the previously held dates first.
		if _, err := repo.blockedColl.DeleteMany(sc, bson.M{
			"job_booking_id": bookingID,
			"reason":         models.BlockFullDayJob,
		}); err != nil {
			return fmt.Errorf("failed to release previous job blocks: %w", err)
		}

		docs := make([]interface{}, len(blocks))
		for i, b := range blocks {
			docs[i] = b
		}
		if _, err := repo.blockedColl.InsertMany(sc, docs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDateTaken
			}
			return fmt.Errorf("failed to insert job blocks: %w", err)
		}
		return nil
	}

	if err := repo.runInTransaction(ctx, txnFn); err != nil {
		if err == ErrDateTaken || err == ErrNotSchedulable {
			return err
		}
		return fmt.Errorf("job reservation transaction failed: %w", err)
	}
	return nil
}

func (repo *mongoSchedulerRepo) CancelBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":     bookingID,
			"status": bson.M{"$nin": []models.BookingStatus{models.StatusCompleted, models.StatusCancelled}},
		}
		update := bson.M{
			"$set": bson.M{"status": models.StatusCancelled, "updated_at": time.Now()},
		}
		res, err := repo.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel transition failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotSchedulable
		}

		if _, err := repo.blockedColl.DeleteMany(sc, bson.M{"job_booking_id": bookingID}); err != nil {
			return fmt.Errorf("failed to remove derived blocks: %w", err)
		}
		return nil
	}

	if err := repo.runInTransaction(ctx, txnFn); err != nil {
		if err == ErrNotSchedulable {
			return err
		}
		return fmt.Errorf("cancellation transaction failed: %w", err)
	}
	return nil
}
