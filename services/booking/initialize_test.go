package booking

import (
	"context"
	"testing"
	"time"

	"lagocruise/models"
	"lagocruise/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() models.CreateBookingInput {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	return models.CreateBookingInput{
		BoatID:        "boat-1",
		StartDate:     start,
		EndDate:       start.Add(2 * time.Hour),
		NumberOfGuest: 4,
		Occasion:      "birthday",
	}
}

func TestInitializeCreatesPendingBookingWithCheckout(t *testing.T) {
	f := newFixture()
	input := validInput()

	result, err := f.svc.Initialize(context.Background(), "user-1", input)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.BookingPending, result.Booking.Status)
	assert.Equal(t, models.PaymentPending, result.Booking.PaymentStatus)
	assert.Equal(t, 200.0, result.Booking.TotalPrice) // 2h at 100/h
	assert.Contains(t, result.PaymentURL, result.PaymentReference)
	assert.NotEmpty(t, result.Booking.ID)

	stored, err := f.repo.GetByID(result.Booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.PaymentReference, stored.PaymentReference)

	require.Len(t, f.gateway.initializeCalls, 1)
	call := f.gateway.initializeCalls[0]
	assert.Equal(t, "user1@example.com", call.Email)
	assert.Equal(t, int64(20000), call.Amount)
	assert.Equal(t, result.Booking.ID, call.Metadata["bookingId"])
}

func TestInitializeFractionalHoursPrice(t *testing.T) {
	f := newFixture()
	input := validInput()
	input.EndDate = input.StartDate.Add(90 * time.Minute)

	result, err := f.svc.Initialize(context.Background(), "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, 150.0, result.Booking.TotalPrice)
}

func TestInitializeRejectsPastStartWithoutGatewayCall(t *testing.T) {
	f := newFixture()
	input := validInput()
	input.StartDate = time.Now().Add(-time.Hour)
	input.EndDate = time.Now().Add(time.Hour)

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeBadRequest, svcErr.Code)
	assert.Empty(t, f.gateway.initializeCalls)
	assert.Empty(t, f.repo.bookings)
}

func TestInitializeRejectsInvertedInterval(t *testing.T) {
	f := newFixture()
	input := validInput()
	input.EndDate = input.StartDate

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeBadRequest, svcErr.Code)
}

func TestInitializeRejectsCapacityExceeded(t *testing.T) {
	f := newFixture()
	input := validInput()
	input.NumberOfGuest = 7 // capacity is 6

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, svcErr.Code)
	assert.Contains(t, svcErr.Message, "exceeds boat capacity")
	assert.Empty(t, f.gateway.initializeCalls)
}

func TestInitializeUnknownBoat(t *testing.T) {
	f := newFixture()
	input := validInput()
	input.BoatID = "boat-missing"

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestInitializeRejectsOverlap(t *testing.T) {
	f := newFixture()
	input := validInput()

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	require.NoError(t, err)

	// Second attempt over an intersecting window on the same boat.
	second := input
	second.StartDate = input.StartDate.Add(time.Hour)
	second.EndDate = second.StartDate.Add(2 * time.Hour)

	_, err = f.svc.Initialize(context.Background(), "user-2", second)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, svcErr.Code)

	// Only the winner's booking remains and only one checkout was opened.
	assert.Len(t, f.repo.bookings, 1)
	assert.Len(t, f.gateway.initializeCalls, 1)
}

func TestInitializeAllowsBackToBackSlots(t *testing.T) {
	f := newFixture()
	f.users.emails["user-2"] = "user2@example.com"
	input := validInput()

	_, err := f.svc.Initialize(context.Background(), "user-1", input)
	require.NoError(t, err)

	// [end, end+2h) shares only the boundary instant and must be accepted.
	next := input
	next.StartDate = input.EndDate
	next.EndDate = input.EndDate.Add(2 * time.Hour)

	_, err = f.svc.Initialize(context.Background(), "user-2", next)
	require.NoError(t, err)
	assert.Len(t, f.repo.bookings, 2)
}

func TestInitializeGatewayFailureLeavesNoBooking(t *testing.T) {
	f := newFixture()
	f.gateway.initializeErr = &payment.GatewayError{Op: "initialize", Message: "provider down"}

	_, err := f.svc.Initialize(context.Background(), "user-1", validInput())
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeGateway, svcErr.Code)

	// The transaction aborted; the slot is free again.
	assert.Empty(t, f.repo.bookings)

	f.gateway.initializeErr = nil
	_, err = f.svc.Initialize(context.Background(), "user-1", validInput())
	require.NoError(t, err)
}
