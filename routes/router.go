package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/config"
	"github.com/ziyuew/habitquest/controllers"
	"github.com/ziyuew/habitquest/middleware"
	"github.com/ziyuew/habitquest/utils"
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
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	habitController := controllers.NewHabitController(db)
	statsController := controllers.NewStatsController(db)
	achievementController := controllers.NewAchievementController(db)
	equipmentController := controllers.NewEquipmentController(db)
	checkInController := controllers.NewCheckInController(db)
	towerController := controllers.NewTowerController(db)
	characterController := controllers.NewCharacterController(db)

	api := r.Group("/api/v1")

	// Credential endpoints are rate limited per client IP.
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/auth/me", authController.Me)
		protected.PATCH("/auth/profile", authController.UpdateProfile)
		protected.POST("/auth/change-password", authController.ChangePassword)

		protected.GET("/habits", habitController.List)
		protected.POST("/habits", habitController.Create)
		protected.GET("/habits/today", habitController.Today)
		protected.PUT("/habits/:id", habitController.Update)
		protected.DELETE("/habits/:id", habitController.Delete)
		protected.POST("/habits/complete", habitController.Complete)

		protected.GET("/stats", statsController.Stats)
		protected.GET("/stats/detailed", statsController.Detailed)
		protected.GET("/leaderboard", statsController.Leaderboard)

		protected.GET("/achievements", achievementController.List)
		protected.GET("/achievements/unlocked", achievementController.Unlocked)

		protected.GET("/equipment", equipmentController.List)
		protected.GET("/equipment/equipped", equipmentController.Equipped)
		protected.POST("/equipment/:id/equip", equipmentController.Equip)

		protected.POST("/checkin", checkInController.CheckIn)
		protected.GET("/checkin/history", checkInController.History)

		protected.GET("/tower/progress", towerController.Progress)
		protected.POST("/tower/start", towerController.StartFloor)
		protected.POST("/tower/complete", towerController.CompleteFloor)

		protected.GET("/characters", characterController.List)
		protected.POST("/characters/select", characterController.Select)
	}

	return r
}
