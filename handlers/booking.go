package handlers

import (
	"net/http"

	"lagocruise/models"
	booking "lagocruise/services/booking"
	"lagocruise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// statusFor maps service error codes to HTTP statuses.
func statusFor(code booking.ErrorCode) int {
	switch code {
	case booking.CodeBadRequest:
		return http.StatusBadRequest
	case booking.CodeUnauthorized:
		return http.StatusUnauthorized
	case booking.CodeForbidden:
		return http.StatusForbidden
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	if svcErr, ok := booking.AsServiceError(err); ok {
		utils.JSONError(c, statusFor(svcErr.Code), svcErr.Message, "")
		return
	}
	h.logger.Error("unexpected booking error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
}

// InitializeBooking reserves a slot and returns the hosted checkout URL.
func (h *BookingHandler) InitializeBooking(c *gin.Context) {
	userID := c.GetString("userID")

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.svc.Initialize(c.Request.Context(), userID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":          result.Booking,
		"paymentUrl":       result.PaymentURL,
		"paymentReference": result.PaymentReference,
	})
}

// VerifyPayment is the client-poll confirmation path after gateway redirect.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")

	result, err := h.svc.VerifyAndConfirm(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"booking": result.Booking,
	})
}

// GetBookingByReference returns a booking looked up by payment reference.
func (h *BookingHandler) GetBookingByReference(c *gin.Context) {
	reference := c.Param("reference")

	b, err := h.svc.GetByReference(reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GetMyBookings lists the authenticated user's bookings with pagination.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID := c.GetString("userID")
	p := utils.ParsePagination(c)

	bookings, total, err := h.svc.ListUserBookings(userID, p.Offset(), int64(p.Limit))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       bookings,
		"pagination": p.Meta(total),
	})
}

// GetBooking returns one of the authenticated user's bookings by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("id")

	b, err := h.svc.GetByID(bookingID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBooking cancels a confirmed booking and reports the refund applied.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("id")

	result, err := h.svc.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": result.Booking,
		"refund": gin.H{
			"amount":     result.RefundAmount,
			"percentage": result.RefundPercentage,
		},
	})
}
