package booking

import (
	"context"

	"lagocruise/models"
)

// InitializeResult is returned when a booking has been reserved and a hosted
// checkout opened for it.
type InitializeResult struct {
	Booking          *models.Booking `json:"booking"`
	PaymentURL       string          `json:"paymentUrl"`
	PaymentReference string          `json:"paymentReference"`
}

// VerifyResult is returned by the client-poll confirmation path.
type VerifyResult struct {
	Booking *models.Booking `json:"booking"`
	Message string          `json:"message"`
}

// CancelResult carries the cancelled booking and the refund applied to it.
type CancelResult struct {
	Booking          *models.Booking `json:"booking"`
	RefundAmount     float64         `json:"refundAmount"`
	RefundPercentage int             `json:"refundPercentage"`
}

// BookingService owns the booking lifecycle: reservation + payment intent,
// reconciliation of gateway results, cancellation with refunds, and the
// background sweeps.
type BookingService interface {
	Initialize(ctx context.Context, userID string, input models.CreateBookingInput) (*InitializeResult, error)
	VerifyAndConfirm(ctx context.Context, reference string) (*VerifyResult, error)
	Cancel(ctx context.Context, bookingID, userID string) (*CancelResult, error)

	GetByReference(reference string) (*models.Booking, error)
	GetByID(bookingID, userID string) (*models.Booking, error)
	ListUserBookings(userID string, skip, limit int64) ([]models.Booking, int64, error)
	ListAllBookings(skip, limit int64) ([]models.Booking, int64, error)

	// Webhook-driven reconciliation. These never return user-facing errors;
	// anomalies are logged for operational follow-up.
	ApplyChargeSuccess(ctx context.Context, data models.WebhookEventData) error
	ApplyChargeFailed(ctx context.Context, data models.WebhookEventData) error
	ApplyRefundProcessed(ctx context.Context, data models.WebhookEventData) error
	ApplyRefundFailed(ctx context.Context, data models.WebhookEventData) error

	SweepAbandoned(ctx context.Context) (int64, error)
	SweepCompleted(ctx context.Context) (int64, error)
}
