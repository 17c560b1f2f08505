// File: database/repository/booking/sweep.go
package bookingRepo

import (
	"fmt"
	"time"

	"lagocruise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SweepAbandoned bulk-transitions PENDING/PENDING bookings created before the
// cutoff to ABANDONED. The exact prior-state filter keeps the sweep from
// racing destructively with user-triggered transitions.
func (r *MongoBookingRepo) SweepAbandoned(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":         models.BookingPending,
		"payment_status": models.PaymentPending,
		"created_at":     bson.M{"$lte": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingAbandoned,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep abandoned bookings: %w", err)
	}
	return result.ModifiedCount, nil
}

// SweepCompleted bulk-transitions CONFIRMED/SUCCESSFUL bookings whose end date
// has passed to COMPLETED.
func (r *MongoBookingRepo) SweepCompleted(now time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":         models.BookingConfirmed,
		"payment_status": models.PaymentSuccessful,
		"end_date":       bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingCompleted,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep completed bookings: %w", err)
	}
	return result.ModifiedCount, nil
}
