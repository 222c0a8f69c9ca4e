package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// ConfigController serves game constants clients mirror for previews: shop
// prices, validation thresholds and the garden geometry.
type ConfigController struct{}

func NewConfigController() *ConfigController { return &ConfigController{} }

// GetShop returns the tree price table.
func (c *ConfigController) GetShop(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"prices": services.TreePrices})
}

// GetRules returns the trip validation thresholds and streak tuning so the
// client can preview rewards before submitting a trip.
func (c *ConfigController) GetRules(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"min_trip_distance_m": services.MinTripDistanceM,
		"min_trip_duration_s": services.MinTripDurationS,
		"max_avg_speed_kmh":   services.MaxAvgSpeedKmh,
		"max_point_speed_kmh": services.MaxPointSpeedKmh,
		"multiplier_per_day":  services.MultiplierPerDay,
		"max_multiplier":      services.MaxMultiplier,
		"grid": gin.H{
			"cols":  services.GridCols,
			"rows":  services.GridRows,
			"house": services.HouseCoords(services.GridCols, services.GridRows),
		},
	})
}
