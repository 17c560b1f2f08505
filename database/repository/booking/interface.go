package bookingRepo

import (
	"context"
	"time"

	"lagocruise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RefundUpdate carries the refund fields written when a booking is cancelled.
type RefundUpdate struct {
	Amount     float64
	Percentage int
	Reference  string
	RefundedAt time.Time
}

// BookingRepository defines data access for bookings. All lifecycle writes are
// conditional on the expected prior state so concurrent flows never clobber
// each other.
type BookingRepository interface {
	// Create inserts a booking. The context may be a session context so the
	// insert participates in an open transaction.
	Create(ctx context.Context, booking *models.Booking) error

	GetByID(id string) (*models.Booking, error)
	GetByIDForUser(id, userID string) (*models.Booking, error)
	GetByReference(reference string) (*models.Booking, error)

	ListByUser(userID string, skip, limit int64) ([]models.Booking, int64, error)
	ListAll(skip, limit int64) ([]models.Booking, int64, error)

	// HasOverlapping reports whether any PENDING or CONFIRMED booking for the
	// boat intersects [start, end). Must run on the same session context as
	// the subsequent Create.
	HasOverlapping(ctx context.Context, boatID string, start, end time.Time) (bool, error)

	// ConfirmByReference transitions PENDING payment to CONFIRMED/SUCCESSFUL.
	// Returns false when no document matched, i.e. another flow already
	// processed the reference.
	ConfirmByReference(reference, channel string, paidAt time.Time) (bool, error)
	// FailByReference transitions a not-yet-successful payment to
	// FAILED/ABANDONED.
	FailByReference(reference string) (bool, error)
	// MarkRefundedByReference records an externally-processed refund.
	MarkRefundedByReference(reference string) (bool, error)
	// CancelWithRefund finalizes a cancellation; matches only
	// CONFIRMED/SUCCESSFUL so a concurrent cancel loses the conditional write.
	CancelWithRefund(id string, refund RefundUpdate) (bool, error)

	// SweepAbandoned bulk-transitions stale PENDING/PENDING bookings created
	// before the cutoff to ABANDONED.
	SweepAbandoned(cutoff time.Time) (int64, error)
	// SweepCompleted bulk-transitions CONFIRMED/SUCCESSFUL bookings whose end
	// date has passed to COMPLETED.
	SweepCompleted(now time.Time) (int64, error)
	// FindRecentlyUpdatedByStatus returns bookings in the given status whose
	// updated_at is at or after since; used to scope sweep notifications.
	FindRecentlyUpdatedByStatus(status models.BookingStatus, since time.Time) ([]models.Booking, error)

	// WithTransaction runs fn inside a MongoDB transaction.
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error
}
