package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "lagocruise/database/repository/booking"
	"lagocruise/models"
	"lagocruise/services/notification"
	"lagocruise/services/payment"

	"go.uber.org/zap"
)

// Cancel cancels a CONFIRMED booking and refunds per the tier policy. The
// refund is requested from the gateway first; only after it succeeds is the
// state transitioned, with a conditional write so a concurrent cancel cannot
// apply twice. A gateway failure leaves the booking CONFIRMED and retryable.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, userID string) (*CancelResult, error) {
	booking, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, newError(CodeNotFound, "Booking not found")
	}

	if booking.Status != models.BookingConfirmed {
		return nil, newError(CodeBadRequest,
			"Booking cannot be cancelled. Current status: %s", booking.Status)
	}
	if booking.PaymentStatus != models.PaymentSuccessful {
		return nil, newError(CodeBadRequest, "Cannot cancel booking without successful payment")
	}

	hoursUntilStart := time.Until(booking.StartDate).Hours()
	if hoursUntilStart < 0 {
		return nil, newError(CodeBadRequest,
			"Booking cannot be cancelled after the start time has passed")
	}

	refundPercentage := refundPercentageFor(hoursUntilStart)
	refundAmount := booking.TotalPrice * float64(refundPercentage) / 100

	refund, err := s.Gateway.Refund(ctx, payment.RefundRequest{
		Reference:    booking.PaymentReference,
		Amount:       payment.ToMinorUnits(refundAmount),
		MerchantNote: fmt.Sprintf("Cancellation refund: %d%% of ₦%.2f", refundPercentage, booking.TotalPrice),
		CustomerNote: fmt.Sprintf("Your booking has been cancelled. You will receive a %d%% refund of ₦%.2f.", refundPercentage, refundAmount),
	})
	if err != nil {
		s.Logger.Error("refund failed",
			zap.String("bookingId", booking.ID),
			zap.Error(err))
		return nil, newError(CodeInternal, "Failed to process refund. Please contact support.")
	}

	matched, err := s.Repo.CancelWithRefund(booking.ID, bookingRepo.RefundUpdate{
		Amount:     refundAmount,
		Percentage: refundPercentage,
		Reference:  refund.RefundReference,
		RefundedAt: time.Now(),
	})
	if err != nil {
		return nil, newError(CodeInternal, "failed to finalize cancellation: %v", err)
	}
	if !matched {
		return nil, newError(CodeConflict, "Booking state changed; cancellation was not applied")
	}

	s.Logger.Info("booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.Float64("refundAmount", refundAmount),
		zap.Int("refundPercentage", refundPercentage),
		zap.String("refundReference", refund.RefundReference))

	updated, err := s.Repo.GetByID(booking.ID)
	if err != nil || updated == nil {
		updated = booking
	}

	if email := s.userEmail(updated); email != "" {
		s.notify(ctx, notification.CancellationEmail(email, updated, s.boatName(updated.BoatID), refundAmount, refundPercentage))
	}

	return &CancelResult{
		Booking:          updated,
		RefundAmount:     refundAmount,
		RefundPercentage: refundPercentage,
	}, nil
}
