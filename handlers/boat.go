package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	boatRepo "lagocruise/database/repository/boat"
	"lagocruise/models"
	"lagocruise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const boatCacheTTL = 10 * time.Minute

// BoatHandler serves the read-only boat catalogue, caching responses in Redis.
type BoatHandler struct {
	repo   boatRepo.BoatRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewBoatHandler(repo boatRepo.BoatRepository, cache *redis.Client, logger *zap.Logger) *BoatHandler {
	return &BoatHandler{repo: repo, cache: cache, logger: logger}
}

// GetBoat returns a single boat by ID.
func (h *BoatHandler) GetBoat(c *gin.Context) {
	id := c.Param("id")
	ctx := context.Background()
	cacheKey := fmt.Sprintf("boat:%s", id)

	if cached, err := h.cache.Get(ctx, cacheKey).Result(); err == nil {
		var boat models.Boat
		if err := json.Unmarshal([]byte(cached), &boat); err == nil {
			c.JSON(http.StatusOK, gin.H{"boat": boat})
			return
		}
	}

	boat, err := h.repo.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load boat", err.Error())
		return
	}
	if boat == nil {
		utils.JSONError(c, http.StatusNotFound, "Boat not found", "")
		return
	}

	if data, err := json.Marshal(boat); err == nil {
		if err := h.cache.Set(ctx, cacheKey, data, boatCacheTTL).Err(); err != nil {
			h.logger.Warn("failed to cache boat", zap.String("boatId", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"boat": boat})
}

// ListBoats returns a page of available boats.
func (h *BoatHandler) ListBoats(c *gin.Context) {
	p := utils.ParsePagination(c)

	boats, total, err := h.repo.ListAvailable(p.Offset(), int64(p.Limit))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list boats", err.Error())
		return
	}
	if boats == nil {
		boats = []models.Boat{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       boats,
		"pagination": p.Meta(total),
	})
}
