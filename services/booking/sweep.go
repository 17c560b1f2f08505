package booking

import (
	"context"
	"time"

	"lagocruise/models"
	"lagocruise/services/notification"

	"go.uber.org/zap"
)

const (
	// abandonAfter is how long a PENDING booking may wait for payment before
	// the sweep releases its slot.
	abandonAfter = 15 * time.Minute
	// notifyWindow scopes sweep notifications to rows updated by the run that
	// just finished, rather than all historically-swept rows. A small race
	// window is accepted instead of per-row notified flags.
	notifyWindow = 10 * time.Second
)

// SweepAbandoned transitions stale unpaid bookings to ABANDONED and notifies
// the affected users best-effort.
func (s *DefaultBookingService) SweepAbandoned(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-abandonAfter)

	modified, err := s.Repo.SweepAbandoned(cutoff)
	if err != nil {
		return 0, err
	}
	if modified == 0 {
		return 0, nil
	}

	sent := s.notifySwept(ctx, models.BookingAbandoned, func(email string, b *models.Booking) notification.Message {
		return notification.AbandonedEmail(email, b)
	})

	s.Logger.Info("abandon sweep finished",
		zap.Int64("transitioned", modified),
		zap.Int("emailsSent", sent))
	return modified, nil
}

// SweepCompleted transitions finished trips to COMPLETED and notifies the
// affected users best-effort.
func (s *DefaultBookingService) SweepCompleted(ctx context.Context) (int64, error) {
	modified, err := s.Repo.SweepCompleted(time.Now())
	if err != nil {
		return 0, err
	}
	if modified == 0 {
		return 0, nil
	}

	sent := s.notifySwept(ctx, models.BookingCompleted, func(email string, b *models.Booking) notification.Message {
		return notification.CompletedEmail(email, b)
	})

	s.Logger.Info("completion sweep finished",
		zap.Int64("transitioned", modified),
		zap.Int("emailsSent", sent))
	return modified, nil
}

// notifySwept emails users whose bookings were transitioned by the run that
// just completed, scoped by the recent-update window.
func (s *DefaultBookingService) notifySwept(ctx context.Context, status models.BookingStatus, build func(string, *models.Booking) notification.Message) int {
	since := time.Now().Add(-notifyWindow)
	swept, err := s.Repo.FindRecentlyUpdatedByStatus(status, since)
	if err != nil {
		s.Logger.Error("failed to load swept bookings for notification",
			zap.String("status", string(status)),
			zap.Error(err))
		return 0
	}

	sent := 0
	for i := range swept {
		b := &swept[i]
		email := s.userEmail(b)
		if email == "" {
			s.Logger.Warn("skipping sweep email, user email missing", zap.String("bookingId", b.ID))
			continue
		}
		if err := s.Mailer.Send(ctx, build(email, b)); err != nil {
			s.Logger.Error("failed to send sweep email",
				zap.String("bookingId", b.ID),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
