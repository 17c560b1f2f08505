package routes

import (
	"lagocruise/handlers"
	"lagocruise/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("/initialize", h.InitializeBooking)
		bookings.GET("/verify-payment/:reference", h.VerifyPayment)
		bookings.GET("/reference/:reference", h.GetBookingByReference)
		bookings.GET("/my-bookings", h.GetMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/cancel", h.CancelBooking)
	}
}
