package models

import "time"

// Achievement requirement types.
const (
	ReqStreak           = "streak"
	ReqAttributeLevel   = "attribute_level"
	ReqLevel            = "level"
	ReqTotalCompletions = "total_completions"
)

// Achievement is a static, seeded definition of one unlockable badge.
type Achievement struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description         string    `gorm:"size:500" json:"description"`
	RequirementType     string    `gorm:"size:32;not null" json:"requirement_type"`
	RequirementValue    int       `gorm:"not null" json:"requirement_value"`
	RequirementCategory string    `gorm:"size:32" json:"requirement_category"`
	RewardXP            int       `json:"reward_xp"`
	RewardDescription   string    `gorm:"size:255" json:"reward_description"`
	Icon                string    `gorm:"size:64" json:"icon"`
	CreatedAt           time.Time `json:"created_at"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Progress only ever increases and is clamped at RequirementValue, which is
// what makes reward payout idempotent.
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index:idx_user_achievement,unique;not null" json:"user_id"`
	AchievementID uint        `gorm:"index:idx_user_achievement,unique;not null" json:"achievement_id"`
	Progress      int         `gorm:"default:0" json:"progress"`
	UnlockedAt    *time.Time  `json:"unlocked_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Achievement   Achievement `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
