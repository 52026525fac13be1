package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// AchievementController serves achievement definitions and per-user progress.
type AchievementController struct {
	db *gorm.DB
}

// NewAchievementController creates an AchievementController.
func NewAchievementController(db *gorm.DB) *AchievementController {
	return &AchievementController{db: db}
}

type achievementView struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Icon             string     `json:"icon"`
	RequirementType  string     `json:"requirement_type"`
	RequirementValue int        `json:"requirement_value"`
	RewardXP         int        `json:"reward_xp"`
	Progress         int        `json:"progress"`
	IsUnlocked       bool       `json:"is_unlocked"`
	UnlockedAt       *time.Time `json:"unlocked_at,omitempty"`
}

// List returns every achievement with the caller's progress merged in.
func (a *AchievementController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var defs []models.Achievement
	if err := a.db.Order("requirement_type, requirement_value").Find(&defs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load achievements")
		return
	}

	var progress []models.UserAchievement
	if err := a.db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load progress")
		return
	}

	byAchievement := make(map[uint]models.UserAchievement, len(progress))
	for _, p := range progress {
		byAchievement[p.AchievementID] = p
	}

	out := make([]achievementView, 0, len(defs))
	for _, def := range defs {
		view := achievementView{
			ID:               def.ID,
			Name:             def.Name,
			Description:      def.Description,
			Icon:             def.Icon,
			RequirementType:  def.RequirementType,
			RequirementValue: def.RequirementValue,
			RewardXP:         def.RewardXP,
		}
		if p, found := byAchievement[def.ID]; found {
			view.Progress = p.Progress
			view.IsUnlocked = p.UnlockedAt != nil
			view.UnlockedAt = p.UnlockedAt
		}
		out = append(out, view)
	}

	utils.Success(ctx, out)
}

// Unlocked returns only the achievements the user has earned, newest first.
func (a *AchievementController) Unlocked(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	type unlockedRow struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Icon        string     `json:"icon"`
		RewardXP    int        `json:"reward_xp"`
		UnlockedAt  *time.Time `json:"unlocked_at"`
	}
	var rows []unlockedRow
	if err := a.db.Model(&models.UserAchievement{}).
		Select("achievements.name, achievements.description, achievements.icon, achievements.reward_xp, user_achievements.unlocked_at").
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ? AND user_achievements.unlocked_at IS NOT NULL", userID).
		Order("user_achievements.unlocked_at DESC").
		Scan(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load unlocked achievements")
		return
	}

	utils.Success(ctx, rows)
}
