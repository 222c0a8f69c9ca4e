package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/config"
	"github.com/svenriksen/syncshack-2025/controllers"
	"github.com/svenriksen/syncshack-2025/middleware"
	"github.com/svenriksen/syncshack-2025/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	tripController := controllers.NewTripController(db)
	gardenController := controllers.NewGardenController(db)
	streakController := controllers.NewStreakController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	coinController := controllers.NewCoinController(db)
	profileController := controllers.NewProfileController(db)
	statsController := controllers.NewStatsController(db)
	configController := controllers.NewConfigController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public, read-only endpoints
	api.GET("/leaderboard/weekly", leaderboardController.GetWeekly)
	api.GET("/stats", statsController.GetStats)
	api.GET("/config/shop", configController.GetShop)
	api.GET("/config/rules", configController.GetRules)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/trips", tripController.CompleteTrip)
	protected.GET("/trips", tripController.ListTrips)
	protected.GET("/trips/today", tripController.TodayTrips)
	protected.GET("/trips/stats", tripController.GetStats)

	protected.GET("/garden", gardenController.GetGarden)
	protected.POST("/garden/plant", gardenController.PlantTree)
	protected.POST("/garden/remove", gardenController.RemoveTree)

	protected.GET("/streak", streakController.GetStreak)
	protected.POST("/streak/increment", streakController.IncrementStreak)
	protected.POST("/streak/reset", streakController.ResetStreak)
	protected.GET("/streak/check", streakController.CheckStreak)

	protected.GET("/leaderboard/me", leaderboardController.GetMyRank)
	protected.POST("/leaderboard/record", leaderboardController.RecordCoins)

	protected.GET("/coins", coinController.GetBalance)
	protected.POST("/coins/add", coinController.AddCoins)

	protected.GET("/profile", profileController.GetProfile)
	protected.PATCH("/profile", profileController.UpdateProfile)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
