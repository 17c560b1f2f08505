// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"lagocruise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HasOverlapping reports whether any live booking for the boat intersects
// [start, end). Only PENDING and CONFIRMED block; terminal bookings never do.
// The interval test is existing.start < end AND existing.end > start.
func (r *MongoBookingRepo) HasOverlapping(ctx context.Context, boatID string, start, end time.Time) (bool, error) {
	filter := bson.M{
		"boat_id":    boatID,
		"status":     bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingConfirmed}},
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings for boat %s: %w", boatID, err)
	}
	return count > 0, nil
}

// ListByUser returns a page of the user's bookings, most recent trip first,
// along with the total count.
func (r *MongoBookingRepo) ListByUser(userID string, skip, limit int64) ([]models.Booking, int64, error) {
	return r.list(bson.M{"user_id": userID}, skip, limit)
}

// ListAll returns a page of every booking, used by the operator surface.
func (r *MongoBookingRepo) ListAll(skip, limit int64) ([]models.Booking, int64, error) {
	return r.list(bson.M{}, skip, limit)
}

func (r *MongoBookingRepo) list(filter bson.M, skip, limit int64) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// FindRecentlyUpdatedByStatus returns bookings in the given status updated at
// or after since. The sweeper uses this to notify only the rows it just
// transitioned.
func (r *MongoBookingRepo) FindRecentlyUpdatedByStatus(status models.BookingStatus, since time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":     status,
		"updated_at": bson.M{"$gte": since},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find recently updated bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode recently updated bookings: %w", err)
	}
	return bookings, nil
}
