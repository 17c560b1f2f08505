package routes

import (
	"lagocruise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBoatRoutes registers the public boat catalogue endpoints.
func RegisterBoatRoutes(r *gin.Engine, h *handlers.BoatHandler) {
	boats := r.Group("/api/v1/boats")
	{
		boats.GET("", h.ListBoats)
		boats.GET("/:id", h.GetBoat)
	}
}
