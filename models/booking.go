package models

import "time"

// BookingStatus is the booking lifecycle axis.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingAbandoned BookingStatus = "ABANDONED"
)

// PaymentStatus is the payment axis, independent of the booking status.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentSuccessful        PaymentStatus = "SUCCESSFUL"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// Booking is the central reservation record. UserID, BoatID and the interval
// are immutable after creation; TotalPrice is computed once and frozen.
type Booking struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"user_id" json:"userId"`
	BoatID string `bson:"boat_id" json:"boatId"`

	StartDate     time.Time `bson:"start_date" json:"startDate"`
	EndDate       time.Time `bson:"end_date" json:"endDate"`
	NumberOfGuest int       `bson:"number_of_guest" json:"numberOfGuest"`
	Occasion      string    `bson:"occasion,omitempty" json:"occasion,omitempty"`
	SpecialRequest string   `bson:"special_request,omitempty" json:"specialRequest,omitempty"`

	TotalPrice float64 `bson:"total_price" json:"totalPrice"`

	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`

	// PaymentReference is the globally unique idempotency key shared with the
	// payment gateway. Once set it never changes.
	PaymentReference string     `bson:"payment_reference" json:"paymentReference"`
	PaymentMethod    string     `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	PaidAt           *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`

	RefundAmount     float64    `bson:"refund_amount,omitempty" json:"refundAmount,omitempty"`
	RefundPercentage int        `bson:"refund_percentage,omitempty" json:"refundPercentage,omitempty"`
	RefundReference  string     `bson:"refund_reference,omitempty" json:"refundReference,omitempty"`
	RefundedAt       *time.Time `bson:"refunded_at,omitempty" json:"refundedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted || s == BookingAbandoned
}

// DurationHours is the booked interval length in hours.
func (b *Booking) DurationHours() float64 {
	return b.EndDate.Sub(b.StartDate).Hours()
}

// CreateBookingInput is the payload accepted when initializing a booking.
type CreateBookingInput struct {
	BoatID         string    `json:"boatId" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
	NumberOfGuest  int       `json:"numberOfGuest" binding:"required,min=1"`
	Occasion       string    `json:"occasion"`
	SpecialRequest string    `json:"specialRequest"`
}
