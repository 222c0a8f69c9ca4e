package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// CoinController exposes the coin balance and out-of-band credits.
type CoinController struct {
	db    *gorm.DB
	board *services.LeaderboardService
}

// NewCoinController creates a new controller instance.
func NewCoinController(db *gorm.DB) *CoinController {
	return &CoinController{db: db, board: services.NewLeaderboardService(db)}
}

// GetBalance returns the user's coin balance, zero before any earning.
func (c *CoinController) GetBalance(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	coins, err := services.Balance(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load balance")
		return
	}
	utils.Success(ctx, gin.H{"coins": coins})
}

// AddCoins credits coins outside the trip flow (promotions, real-tree
// programs) and feeds the weekly leaderboard like any other earn.
func (c *CoinController) AddCoins(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Amount int `json:"amount" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := services.CreditCoins(tx, userID, req.Amount); err != nil {
			return err
		}
		return services.RecordWeeklyCoins(tx, userID, req.Amount, time.Now())
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to add coins")
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	coins, err := services.Balance(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load balance")
		return
	}
	utils.Success(ctx, gin.H{"new_balance": coins})
}
