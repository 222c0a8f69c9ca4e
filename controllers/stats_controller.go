package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/models"
	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// StatsController provides community-wide impact statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new controller instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate numbers across all users for the impact page.
func (s *StatsController) GetStats(ctx *gin.Context) {
	cacheKey := "cache:stats:community"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}

	var tripCount int64
	if err := s.db.Model(&models.Trip{}).Where("valid = ?", true).Count(&tripCount).Error; err != nil {
		tripCount = 0
	}

	var totalDistanceM float64
	if err := s.db.Model(&models.Trip{}).Where("valid = ?", true).
		Select("COALESCE(SUM(distance_m), 0)").Scan(&totalDistanceM).Error; err != nil {
		totalDistanceM = 0
	}

	type treeCounts struct {
		VirtualCount int64
		RealCount    int64
	}
	var trees treeCounts
	if err := s.db.Model(&models.Profile{}).
		Select("COALESCE(SUM(trees_planted_virtual), 0) AS virtual_count, COALESCE(SUM(trees_planted_real), 0) AS real_count").
		Scan(&trees).Error; err != nil {
		trees = treeCounts{}
	}

	distanceKm := totalDistanceM / 1000
	payload := gin.H{
		"user_count":        userCount,
		"valid_trip_count":  tripCount,
		"total_distance_km": distanceKm,
		"co2_saved_g":       distanceKm * services.CO2SavedPerKm,
		"trees_virtual":     trees.VirtualCount,
		"trees_real":        trees.RealCount,
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}
