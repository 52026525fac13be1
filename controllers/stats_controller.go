package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/config"
	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// StatsController exposes player statistics and the global leaderboard.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// Stats returns the player's progression summary with equipment bonuses
// folded into the attribute values.
func (s *StatsController) Stats(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, s.db)
	if !ok {
		return
	}

	effective, err := game.EffectiveAttributes(s.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to compute attributes")
		return
	}

	var totalCompletions int64
	if err := s.db.Model(&models.HabitCompletion{}).
		Where("user_id = ?", user.ID).Count(&totalCompletions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count completions")
		return
	}

	var unlockedAchievements int64
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND unlocked_at IS NOT NULL", user.ID).
		Count(&unlockedAchievements).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to count achievements")
		return
	}

	utils.Success(ctx, gin.H{
		"level":                 user.Level,
		"current_xp":            user.CurrentXP,
		"next_level_xp":         user.NextLevelXP,
		"max_hp":                user.MaxHP,
		"current_hp":            user.CurrentHP,
		"attributes":            effective,
		"total_completions":     totalCompletions,
		"unlocked_achievements": unlockedAchievements,
		"selected_character":    user.SelectedCharacter,
	})
}

// Detailed returns recent completion history plus per-category aggregates.
func (s *StatsController) Detailed(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, s.db)
	if !ok {
		return
	}

	type recentRow struct {
		HabitName   string `json:"habit_name"`
		Category    string `json:"category"`
		CompletedOn string `json:"completed_on"`
		XPEarned    int    `json:"xp_earned"`
	}
	var recent []recentRow
	if err := s.db.Model(&models.HabitCompletion{}).
		Select("habits.name AS habit_name, habits.category AS category, habit_completions.completed_on, habit_completions.xp_earned").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habit_completions.user_id = ?", user.ID).
		Order("habit_completions.completed_at DESC").
		Limit(10).
		Scan(&recent).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load recent completions")
		return
	}

	type categoryRow struct {
		Category    string `json:"category"`
		Completions int64  `json:"completions"`
		TotalXP     int64  `json:"total_xp"`
	}
	var byCategory []categoryRow
	if err := s.db.Model(&models.HabitCompletion{}).
		Select("habits.category AS category, COUNT(*) AS completions, SUM(habit_completions.xp_earned) AS total_xp").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habit_completions.user_id = ?", user.ID).
		Group("habits.category").
		Scan(&byCategory).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to aggregate by category")
		return
	}

	var bestStreak int
	s.db.Model(&models.Habit{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(MAX(streak), 0)").
		Scan(&bestStreak)

	utils.Success(ctx, gin.H{
		"recent_completions": recent,
		"by_category":        byCategory,
		"best_streak":        bestStreak,
	})
}

type leaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	CurrentXP   int    `json:"current_xp"`
	Character   string `json:"character"`
}

// Leaderboard lists the top players by level, then XP. Served from Redis
// when available; any level-up invalidates the cached copy.
func (s *StatsController) Leaderboard(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(game.LeaderboardCacheKey); ok {
		utils.Success(ctx, json.RawMessage(b))
		return
	}

	var users []models.User
	if err := s.db.Order("level DESC, current_xp DESC").Limit(50).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load leaderboard")
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardEntry{
			Rank:        i + 1,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Level:       u.Level,
			CurrentXP:   u.CurrentXP,
			Character:   u.SelectedCharacter,
		})
	}

	ttl := time.Duration(config.Get().LeaderboardCacheSec) * time.Second
	utils.CacheSetJSON(game.LeaderboardCacheKey, entries, ttl)
	utils.Success(ctx, entries)
}
