package booking

import (
	"context"
	"time"

	"lagocruise/models"
	"lagocruise/services/notification"
	"lagocruise/services/payment"

	"go.uber.org/zap"
)

// confirm applies a verified successful payment to a booking. The conditional
// update is the idempotency point: whichever flow (poll or webhook) matches
// first performs the transition and sends the one confirmation email; everyone
// else no-ops.
func (s *DefaultBookingService) confirm(ctx context.Context, booking *models.Booking, channel string, paidAt time.Time) (bool, error) {
	matched, err := s.Repo.ConfirmByReference(booking.PaymentReference, channel, paidAt)
	if err != nil {
		return false, newError(CodeInternal, "failed to confirm booking: %v", err)
	}
	if !matched {
		return false, nil
	}

	s.Logger.Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("reference", booking.PaymentReference),
		zap.String("channel", channel))

	if email := s.userEmail(booking); email != "" {
		s.notify(ctx, notification.ConfirmationEmail(email, booking, s.boatName(booking.BoatID)))
	}
	return true, nil
}

// VerifyAndConfirm is the client-poll confirmation path, invoked after the
// redirect back from the gateway. It re-verifies the payment with the gateway
// before transitioning.
func (s *DefaultBookingService) VerifyAndConfirm(ctx context.Context, reference string) (*VerifyResult, error) {
	booking, err := s.Repo.GetByReference(reference)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, newError(CodeNotFound, "Booking not found")
	}

	if booking.PaymentStatus == models.PaymentSuccessful {
		return &VerifyResult{Booking: booking, Message: "Booking already confirmed"}, nil
	}

	verified, err := s.Gateway.Verify(ctx, reference)
	if err != nil {
		return nil, newError(CodeGateway, "failed to verify payment: %v", err)
	}

	if verified.Status != payment.StatusSuccess {
		if _, err := s.Repo.FailByReference(reference); err != nil {
			s.Logger.Error("failed to mark booking failed", zap.String("reference", reference), zap.Error(err))
		}
		return nil, newError(CodeBadRequest, "Payment verification failed. Status: %s", verified.Status)
	}

	if verified.Amount != payment.ToMinorUnits(booking.TotalPrice) {
		return nil, newError(CodeBadRequest, "Payment amount does not match booking total")
	}

	transitioned, err := s.confirm(ctx, booking, verified.Channel, verified.PaidAt)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetByReference(reference)
	if err != nil || updated == nil {
		updated = booking
	}
	if !transitioned {
		// A concurrent reconciliation won the conditional write.
		return &VerifyResult{Booking: updated, Message: "Booking already confirmed"}, nil
	}
	return &VerifyResult{Booking: updated, Message: "Booking confirmed successfully"}, nil
}

// ApplyChargeSuccess is the webhook confirmation path. It trusts the signed
// payload's status and amount instead of re-calling verify; signature
// authenticity is checked upstream by the webhook handler.
func (s *DefaultBookingService) ApplyChargeSuccess(ctx context.Context, data models.WebhookEventData) error {
	booking, err := s.Repo.GetByReference(data.Reference)
	if err != nil {
		return err
	}
	if booking == nil {
		s.Logger.Error("booking not found for webhook reference", zap.String("reference", data.Reference))
		return nil
	}

	if booking.PaymentStatus == models.PaymentSuccessful {
		s.Logger.Info("payment already processed", zap.String("bookingId", booking.ID))
		return nil
	}

	if data.Amount != payment.ToMinorUnits(booking.TotalPrice) {
		s.Logger.Error("webhook amount mismatch",
			zap.String("bookingId", booking.ID),
			zap.Int64("expected", payment.ToMinorUnits(booking.TotalPrice)),
			zap.Int64("got", data.Amount))
		if _, err := s.Repo.FailByReference(data.Reference); err != nil {
			return err
		}
		return nil
	}

	paidAt, parseErr := time.Parse(time.RFC3339, data.PaidAt)
	if parseErr != nil {
		paidAt = time.Now()
	}
	_, err = s.confirm(ctx, booking, data.Channel, paidAt)
	return err
}

// ApplyChargeFailed abandons a booking whose charge failed on the gateway.
func (s *DefaultBookingService) ApplyChargeFailed(ctx context.Context, data models.WebhookEventData) error {
	booking, err := s.Repo.GetByReference(data.Reference)
	if err != nil {
		return err
	}
	if booking == nil {
		s.Logger.Error("booking not found for webhook reference", zap.String("reference", data.Reference))
		return nil
	}

	matched, err := s.Repo.FailByReference(data.Reference)
	if err != nil {
		return err
	}
	if matched {
		s.Logger.Info("booking marked as failed",
			zap.String("bookingId", booking.ID),
			zap.String("reason", data.Message))
	}
	return nil
}

// ApplyRefundProcessed reconciles a refund that completed on the gateway side,
// covering refunds initiated outside this service.
func (s *DefaultBookingService) ApplyRefundProcessed(ctx context.Context, data models.WebhookEventData) error {
	matched, err := s.Repo.MarkRefundedByReference(data.Reference)
	if err != nil {
		return err
	}
	if matched {
		s.Logger.Info("refund confirmed via webhook", zap.String("reference", data.Reference))
	}
	return nil
}

// ApplyRefundFailed flags a failed refund for manual operator intervention; it
// is never auto-retried.
func (s *DefaultBookingService) ApplyRefundFailed(ctx context.Context, data models.WebhookEventData) error {
	s.Logger.Error("CRITICAL: refund failed, manual refund required",
		zap.String("reference", data.Reference),
		zap.String("reason", data.Message))
	return nil
}
