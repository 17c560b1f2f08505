package booking

import (
	"lagocruise/models"
)

// GetByReference fetches a booking by its payment reference.
func (s *DefaultBookingService) GetByReference(reference string) (*models.Booking, error) {
	booking, err := s.Repo.GetByReference(reference)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, newError(CodeNotFound, "Booking not found")
	}
	return booking, nil
}

// GetByID fetches a booking scoped to its owning user.
func (s *DefaultBookingService) GetByID(bookingID, userID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, newError(CodeNotFound, "Booking not found")
	}
	return booking, nil
}

// ListUserBookings returns a page of the user's bookings plus the total count.
func (s *DefaultBookingService) ListUserBookings(userID string, skip, limit int64) ([]models.Booking, int64, error) {
	bookings, total, err := s.Repo.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, 0, newError(CodeInternal, "failed to list bookings: %v", err)
	}
	return bookings, total, nil
}

// ListAllBookings returns a page across all users, for the operator surface.
func (s *DefaultBookingService) ListAllBookings(skip, limit int64) ([]models.Booking, int64, error) {
	bookings, total, err := s.Repo.ListAll(skip, limit)
	if err != nil {
		return nil, 0, newError(CodeInternal, "failed to list bookings: %v", err)
	}
	return bookings, total, nil
}
