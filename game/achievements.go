package game

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
)

// EvaluateAchievements scans every achievement the user has not finished and
// grants any that the current state now satisfies. habit is the habit whose
// completion triggered the evaluation; pass nil for check-ins and tower
// floors, which skips streak requirements.
//
// Progress is clamped at the requirement value, so re-running the evaluation
// is a no-op and the reward XP is paid at most once per achievement.
func EvaluateAchievements(db *gorm.DB, user *models.User, habit *models.Habit) error {
	var defs []models.Achievement
	if err := db.Find(&defs).Error; err != nil {
		return err
	}

	for i := range defs {
		def := &defs[i]

		var ua models.UserAchievement
		err := db.Where("user_id = ? AND achievement_id = ?", user.ID, def.ID).First(&ua).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ua = models.UserAchievement{UserID: user.ID, AchievementID: def.ID}
			if err := db.Create(&ua).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if ua.Progress >= def.RequirementValue {
			continue
		}

		met, err := requirementMet(db, user, habit, def)
		if err != nil {
			return err
		}
		if !met {
			continue
		}

		now := time.Now()
		ua.Progress = def.RequirementValue
		ua.UnlockedAt = &now
		if err := db.Save(&ua).Error; err != nil {
			return err
		}
		if def.RewardXP > 0 {
			if err := AddXP(db, user, def.RewardXP, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func requirementMet(db *gorm.DB, user *models.User, habit *models.Habit, def *models.Achievement) (bool, error) {
	switch def.RequirementType {
	case models.ReqStreak:
		if habit == nil {
			return false, nil
		}
		if def.RequirementCategory != "" && def.RequirementCategory != habit.Category {
			return false, nil
		}
		return habit.Streak >= def.RequirementValue, nil
	case models.ReqAttributeLevel:
		return user.AttributeLevel(models.Attribute(def.RequirementCategory)) >= def.RequirementValue, nil
	case models.ReqLevel:
		return user.Level >= def.RequirementValue, nil
	case models.ReqTotalCompletions:
		var count int64
		if err := db.Model(&models.HabitCompletion{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return false, err
		}
		return count >= int64(def.RequirementValue), nil
	default:
		return false, nil
	}
}
