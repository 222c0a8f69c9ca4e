package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// GardenController exposes the planting grid and the purchases against it.
type GardenController struct {
	garden *services.GardenService
}

// NewGardenController creates a new controller instance.
func NewGardenController(db *gorm.DB) *GardenController {
	return &GardenController{garden: services.NewGardenService(db)}
}

func gardenCacheKey(userID uint) string {
	return "cache:garden:" + strconv.Itoa(int(userID)) + ":"
}

// GetGarden returns the user's grid as a flat tile array; house cells always
// read "empty".
func (g *GardenController) GetGarden(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := gardenCacheKey(userID) + "view"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	view, err := g.garden.View(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load garden")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: view}
	utils.CacheSetJSON(cacheKey, wrapper, time.Minute)
	utils.Success(ctx, view)
}

// PlantTree buys and places a tree. Distinguishes validation, conflict and
// insufficient-funds failures so clients can render precise messages.
func (g *GardenController) PlantTree(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		X    int    `json:"x" binding:"min=0"`
		Y    int    `json:"y" binding:"min=0"`
		Type string `json:"type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	result, err := g.garden.Plant(userID, req.X, req.Y, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLocation), errors.Is(err, services.ErrUnknownTreeType):
			utils.Error(ctx, http.StatusBadRequest, 40071, err.Error())
		case errors.Is(err, services.ErrTileOccupied):
			utils.Error(ctx, http.StatusConflict, 40902, err.Error())
		default:
			if funds, ok := services.IsInsufficientFunds(err); ok {
				utils.Respond(ctx, http.StatusBadRequest, 40072, funds.Error(), gin.H{
					"required":  funds.Required,
					"available": funds.Available,
				})
				return
			}
			utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to plant tree")
		}
		return
	}

	utils.InvalidateByPrefix(gardenCacheKey(userID))
	utils.Success(ctx, gin.H{"tree": result.Tile, "new_balance": result.NewBalance})
}

// RemoveTree deletes a planted tree and refunds half its price.
func (g *GardenController) RemoveTree(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		X int `json:"x" binding:"min=0"`
		Y int `json:"y" binding:"min=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40073, "invalid request payload")
		return
	}

	refund, err := g.garden.Remove(userID, req.X, req.Y)
	if err != nil {
		if errors.Is(err, services.ErrTileNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40470, err.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to remove tree")
		return
	}

	utils.InvalidateByPrefix(gardenCacheKey(userID))
	utils.Success(ctx, gin.H{"refund": refund})
}
