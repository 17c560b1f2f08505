package booking

import (
	"context"

	boatRepo "lagocruise/database/repository/boat"
	bookingRepo "lagocruise/database/repository/booking"
	userRepo "lagocruise/database/repository/user"
	"lagocruise/models"
	"lagocruise/services/notification"
	"lagocruise/services/payment"

	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
// All collaborators are injected at startup.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	BoatRepo boatRepo.BoatRepository
	UserRepo userRepo.UserRepository
	Gateway  payment.Gateway
	Mailer   notification.Sender
	Logger   *zap.Logger

	// CallbackBaseURL is the frontend origin payment redirects return to.
	CallbackBaseURL string
}

// notify sends a booking email best-effort; delivery failures never roll back
// or block the state transition that triggered them.
func (s *DefaultBookingService) notify(ctx context.Context, msg notification.Message) {
	if s.Mailer == nil || msg.To == "" {
		return
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		s.Logger.Error("failed to send booking email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

// boatName resolves a display name for emails, falling back to a generic
// label when the boat lookup fails.
func (s *DefaultBookingService) boatName(boatID string) string {
	boat, err := s.BoatRepo.GetByID(boatID)
	if err != nil || boat == nil {
		return "your booked boat"
	}
	return boat.BoatName
}

// userEmail loads the booking owner's email for notifications.
func (s *DefaultBookingService) userEmail(booking *models.Booking) string {
	email, err := s.UserRepo.GetEmailByID(booking.UserID)
	if err != nil {
		s.Logger.Warn("failed to load user email for notification",
			zap.String("bookingId", booking.ID),
			zap.Error(err))
		return ""
	}
	return email
}
