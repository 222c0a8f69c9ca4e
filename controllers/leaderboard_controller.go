package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// LeaderboardController exposes the weekly coin leaderboard.
type LeaderboardController struct {
	board *services.LeaderboardService
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{board: services.NewLeaderboardService(db)}
}

// GetWeekly returns the current week's ranked board, capped at 50 entries.
// Public and briefly cached; writers invalidate the prefix.
func (l *LeaderboardController) GetWeekly(ctx *gin.Context) {
	cacheKey := "cache:leaderboard:weekly"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	board, err := l.board.Top(services.LeaderboardTopN, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load leaderboard")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: board}
	utils.CacheSetJSON(cacheKey, wrapper, 30*time.Second)
	utils.Success(ctx, board)
}

// GetMyRank locates the authenticated user on the current week's board.
func (l *LeaderboardController) GetMyRank(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	rank, err := l.board.UserRank(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to compute rank")
		return
	}
	utils.Success(ctx, rank)
}

// RecordCoins adds coins to the caller's weekly bucket. Normally driven by
// trip completion; exposed for reward sources outside the trip flow.
func (l *LeaderboardController) RecordCoins(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Coins int `json:"coins" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	if err := l.board.RecordCoins(userID, req.Coins, time.Now()); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to record coins")
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	rank, err := l.board.UserRank(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to compute rank")
		return
	}
	utils.Success(ctx, rank)
}
