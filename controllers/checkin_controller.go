package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/config"
	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// CheckInController handles the once-per-day login bonus.
type CheckInController struct {
	db *gorm.DB
}

// NewCheckInController creates a CheckInController.
func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{db: db}
}

// CheckIn awards the daily bonus XP. Repeats on the same day are rejected;
// the unique index on (user_id, checkin_date) guarantees it under races.
func (c *CheckInController) CheckIn(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, c.db)
	if !ok {
		return
	}

	rewardXP := config.Get().CheckinRewardXP
	if rewardXP <= 0 {
		rewardXP = game.CheckInXP
	}

	today := models.DayKey(time.Now())
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var existing models.DailyCheckIn
		err := tx.Where("user_id = ? AND checkin_date = ?", user.ID, today).First(&existing).Error
		if err == nil {
			return game.ErrAlreadyCompletedToday
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := models.DailyCheckIn{
			UserID:      user.ID,
			CheckinDate: today,
			XPEarned:    rewardXP,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return game.ErrAlreadyCompletedToday
			}
			return err
		}

		if err := game.AddXP(tx, user, rewardXP, ""); err != nil {
			return err
		}
		return game.EvaluateAchievements(tx, user, nil)
	})
	if err != nil {
		if errors.Is(err, game.ErrAlreadyCompletedToday) {
			utils.Error(ctx, http.StatusBadRequest, 40050, "already checked in today")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to check in")
		return
	}

	utils.Success(ctx, gin.H{
		"xp_earned": rewardXP,
		"user": gin.H{
			"level":         user.Level,
			"current_xp":    user.CurrentXP,
			"next_level_xp": user.NextLevelXP,
		},
	})
}

// History returns the past year of check-in dates plus today's status.
func (c *CheckInController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	since := models.DayKey(time.Now().AddDate(0, 0, -365))
	var rows []models.DailyCheckIn
	if err := c.db.Where("user_id = ? AND checkin_date >= ?", userID, since).
		Order("checkin_date DESC").Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load check-in history")
		return
	}

	today := models.DayKey(time.Now())
	dates := make([]string, 0, len(rows))
	checkedInToday := false
	for _, row := range rows {
		dates = append(dates, row.CheckinDate)
		if row.CheckinDate == today {
			checkedInToday = true
		}
	}

	var total int64
	if err := c.db.Model(&models.DailyCheckIn{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to count check-ins")
		return
	}

	utils.Success(ctx, gin.H{
		"dates":            dates,
		"checked_in_today": checkedInToday,
		"total_checkins":   total,
	})
}
