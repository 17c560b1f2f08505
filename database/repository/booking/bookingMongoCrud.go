// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lagocruise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document. The caller's context is used as-is so
// the insert can participate in an open session/transaction.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByIDForUser retrieves a booking scoped to its owning user.
func (r *MongoBookingRepo) GetByIDForUser(id, userID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s for user %s: %w", id, userID, err)
	}
	return &booking, nil
}

// GetByReference retrieves a booking by its payment reference.
func (r *MongoBookingRepo) GetByReference(reference string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"payment_reference": reference}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking with reference %s: %w", reference, err)
	}
	return &booking, nil
}

// ConfirmByReference flips a pending payment to CONFIRMED/SUCCESSFUL. The
// payment_status filter is the idempotency guard: a second confirmation of the
// same reference matches nothing.
func (r *MongoBookingRepo) ConfirmByReference(reference, channel string, paidAt time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"payment_reference": reference,
		"payment_status":    models.PaymentPending,
		"status":            models.BookingPending,
	}
	update := bson.M{"$set": bson.M{
		"status":         models.BookingConfirmed,
		"payment_status": models.PaymentSuccessful,
		"payment_method": channel,
		"paid_at":        paidAt,
		"updated_at":     time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm booking with reference %s: %w", reference, err)
	}
	return result.MatchedCount > 0, nil
}

// FailByReference marks a not-yet-successful payment as FAILED and abandons
// the booking.
func (r *MongoBookingRepo) FailByReference(reference string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"payment_reference": reference,
		"payment_status":    bson.M{"$in": []models.PaymentStatus{models.PaymentPending, models.PaymentFailed}},
		"status":            models.BookingPending,
	}
	update := bson.M{"$set": bson.M{
		"status":         models.BookingAbandoned,
		"payment_status": models.PaymentFailed,
		"updated_at":     time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to fail booking with reference %s: %w", reference, err)
	}
	return result.MatchedCount > 0, nil
}

// MarkRefundedByReference records a refund that completed on the gateway side.
func (r *MongoBookingRepo) MarkRefundedByReference(reference string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"payment_reference": reference,
		"payment_status":    bson.M{"$ne": models.PaymentRefunded},
	}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentRefunded,
		"updated_at":     time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark refund for reference %s: %w", reference, err)
	}
	return result.MatchedCount > 0, nil
}

// CancelWithRefund finalizes a user cancellation. Matching on the exact prior
// state means a concurrent cancel or sweep loses the write instead of
// double-applying it.
func (r *MongoBookingRepo) CancelWithRefund(id string, refund RefundUpdate) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":             id,
		"status":         models.BookingConfirmed,
		"payment_status": models.PaymentSuccessful,
	}
	update := bson.M{"$set": bson.M{
		"status":            models.BookingCancelled,
		"payment_status":    models.PaymentRefunded,
		"refund_amount":     refund.Amount,
		"refund_percentage": refund.Percentage,
		"refund_reference":  refund.Reference,
		"refunded_at":       refund.RefundedAt,
		"updated_at":        time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}
