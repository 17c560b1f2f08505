package booking

import (
	"context"
	"fmt"
	"time"

	"lagocruise/models"
	"lagocruise/services/payment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Initialize reserves a time slot and opens a hosted checkout for it. The
// overlap check, the PENDING insert and the gateway call share one
// transaction: if the gateway refuses, the transaction aborts and no orphan
// PENDING booking is left behind.
func (s *DefaultBookingService) Initialize(ctx context.Context, userID string, input models.CreateBookingInput) (*InitializeResult, error) {
	now := time.Now()
	if input.StartDate.Before(now) {
		return nil, newError(CodeBadRequest, "Start date cannot be in the past")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, newError(CodeBadRequest, "End date must be after start date")
	}

	boat, err := s.BoatRepo.GetByID(input.BoatID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load boat: %v", err)
	}
	if boat == nil {
		return nil, newError(CodeNotFound, "Boat not found")
	}

	if input.NumberOfGuest > boat.Capacity {
		return nil, newError(CodeForbidden,
			"Number of guests (%d) exceeds boat capacity (%d)", input.NumberOfGuest, boat.Capacity)
	}

	email, err := s.UserRepo.GetEmailByID(userID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load user: %v", err)
	}
	if email == "" {
		return nil, newError(CodeNotFound, "User not found or email missing")
	}

	durationHours := input.EndDate.Sub(input.StartDate).Hours()
	totalPrice := boat.PricePerHour * durationHours

	reference := payment.GenerateReference("BKG")
	booking := &models.Booking{
		ID:               uuid.New().String(),
		UserID:           userID,
		BoatID:           input.BoatID,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		NumberOfGuest:    input.NumberOfGuest,
		Occasion:         input.Occasion,
		SpecialRequest:   input.SpecialRequest,
		TotalPrice:       totalPrice,
		Status:           models.BookingPending,
		PaymentStatus:    models.PaymentPending,
		PaymentReference: reference,
	}

	var paymentURL string
	err = s.Repo.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlap, err := s.Repo.HasOverlapping(sessCtx, input.BoatID, input.StartDate, input.EndDate)
		if err != nil {
			return newError(CodeInternal, "failed to check availability: %v", err)
		}
		if overlap {
			return newError(CodeConflict,
				"The boat is already booked for the selected time. Please choose a different time slot.")
		}

		if err := s.Repo.Create(sessCtx, booking); err != nil {
			return newError(CodeInternal, "failed to create booking: %v", err)
		}

		// Gateway call stays inside the transaction: commit only happens once
		// a live payment intent exists for the reservation.
		result, err := s.Gateway.Initialize(sessCtx, payment.InitializeRequest{
			Email:       email,
			Amount:      payment.ToMinorUnits(totalPrice),
			Reference:   reference,
			CallbackURL: fmt.Sprintf("%s/bookings/%s/verify", s.CallbackBaseURL, booking.ID),
			Metadata: map[string]string{
				"bookingId": booking.ID,
				"userId":    userID,
				"boatId":    input.BoatID,
				"boatName":  boat.BoatName,
				"startDate": input.StartDate.Format(time.RFC3339),
				"endDate":   input.EndDate.Format(time.RFC3339),
			},
		})
		if err != nil {
			return newError(CodeGateway, "failed to initialize payment: %v", err)
		}
		paymentURL = result.AuthorizationURL
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("booking initialized",
		zap.String("bookingId", booking.ID),
		zap.String("boatId", input.BoatID),
		zap.String("reference", reference),
		zap.Float64("totalPrice", totalPrice))

	return &InitializeResult{
		Booking:          booking,
		PaymentURL:       paymentURL,
		PaymentReference: reference,
	}, nil
}
