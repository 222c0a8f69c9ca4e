package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// StreakController exposes the consecutive-day streak state machine.
type StreakController struct {
	streaks *services.StreakService
}

// NewStreakController creates a new controller instance.
func NewStreakController(db *gorm.DB) *StreakController {
	return &StreakController{streaks: services.NewStreakService(db)}
}

// GetStreak returns the current streak and derived multiplier.
func (s *StreakController) GetStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	status, err := s.streaks.Status(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load streak")
		return
	}
	utils.Success(ctx, status)
}

// IncrementStreak credits today as an active day. Safe to retry: same-day
// repeats are no-ops.
func (s *StreakController) IncrementStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	change, err := s.streaks.Increment(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to update streak")
		return
	}
	if change.Wither {
		utils.InvalidateByPrefix(gardenCacheKey(userID))
	}

	utils.Success(ctx, gin.H{
		"current_streak": change.Current,
		"longest_streak": change.Longest,
		"multiplier":     services.Multiplier(change.Current),
		"message":        change.Message,
	})
}

// ResetStreak zeroes the streak and withers the newest tree. Intended for the
// external day-rollover scheduler; idempotent within a day.
func (s *StreakController) ResetStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	change, err := s.streaks.Reset(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to reset streak")
		return
	}
	if change.Wither {
		utils.InvalidateByPrefix(gardenCacheKey(userID))
	}

	utils.Success(ctx, gin.H{
		"current_streak": change.Current,
		"longest_streak": change.Longest,
		"multiplier":     services.Multiplier(change.Current),
		"message":        change.Message,
	})
}

// CheckStreak is the read-only day-rollover query for an external scheduler.
func (s *StreakController) CheckStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	check, err := s.streaks.Check(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to check streak")
		return
	}
	utils.Success(ctx, check)
}
