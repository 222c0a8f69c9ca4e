package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// TripController exposes trip completion, history and aggregate statistics.
type TripController struct {
	trips *services.TripService
}

// NewTripController creates a new controller instance.
func NewTripController(db *gorm.DB) *TripController {
	return &TripController{trips: services.NewTripService(db)}
}

// CompleteTrip validates a finished journey and applies its rewards.
// Invalidity is a result value, not an error: the trip is still recorded.
func (t *TripController) CompleteTrip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		StartLat  float64 `json:"start_lat" binding:"min=-90,max=90"`
		StartLng  float64 `json:"start_lng" binding:"min=-180,max=180"`
		EndLat    float64 `json:"end_lat" binding:"min=-90,max=90"`
		EndLng    float64 `json:"end_lng" binding:"min=-180,max=180"`
		DistanceM float64 `json:"distance_m" binding:"min=0"`
		DurationS int     `json:"duration_s" binding:"required,gt=0"`
		Polyline  string  `json:"polyline"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	result, err := t.trips.Complete(userID, services.TripInput{
		StartLat:  req.StartLat,
		StartLng:  req.StartLng,
		EndLat:    req.EndLat,
		EndLng:    req.EndLng,
		DistanceM: req.DistanceM,
		DurationS: req.DurationS,
		Polyline:  req.Polyline,
	}, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to record trip")
		return
	}

	// Reward mutations invalidate the cached leaderboard views.
	if result.Valid {
		utils.InvalidateByPrefix("cache:leaderboard:")
		if result.Streak != nil && result.Streak.Wither {
			utils.InvalidateByPrefix(gardenCacheKey(userID))
		}
	}

	utils.Success(ctx, gin.H{
		"trip":          result.Trip,
		"valid":         result.Valid,
		"coins_awarded": result.CoinsAwarded,
		"mode_guess":    result.ModeGuess,
		"avg_speed_kmh": result.AvgSpeedKmh,
		"streak":        result.Streak,
	})
}

// ListTrips returns the user's trip history, newest first.
func (t *TripController) ListTrips(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit, offset := parsePagination(ctx.Query("limit"), ctx.Query("offset"))
	page, err := t.trips.List(userID, limit, offset)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to list trips")
		return
	}
	utils.Success(ctx, page)
}

// TodayTrips returns trips started on the current calendar day.
func (t *TripController) TodayTrips(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	trips, err := t.trips.Today(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to list trips")
		return
	}
	utils.Success(ctx, gin.H{"trips": trips})
}

// GetStats returns lifetime trip totals plus this week's distance and CO2
// savings.
func (t *TripController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	stats, err := t.trips.Stats(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to aggregate trips")
		return
	}
	utils.Success(ctx, stats)
}
