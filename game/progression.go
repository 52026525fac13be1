package game

import (
	"math"

	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

const (
	// attrXPPerLevel is the fixed XP cost of one attribute level.
	attrXPPerLevel = 100
	// hpPerLevel is added to max HP on every character level-up.
	hpPerLevel = 10
	// CheckInXP is the fixed reward for a daily check-in.
	CheckInXP = 100
	// TowerFloorXP is the per-floor multiplier for completing a tower floor.
	TowerFloorXP = 100
)

// AddXP awards amount XP to the user, applying as many character level-ups as
// the award covers. Each level-up consumes the current threshold, grows the
// next one by 1.5x (integer truncation), raises max HP by 10 and restores
// current HP to full. When attribute is non-empty the same amount feeds that
// attribute's counter, cascading past 100 as many times as it crosses.
//
// The mutated user is persisted with db; callers inside a transaction pass
// the tx handle.
func AddXP(db *gorm.DB, user *models.User, amount int, attribute models.Attribute) error {
	if amount < 0 {
		return ErrValidation
	}

	user.CurrentXP += amount
	for user.NextLevelXP > 0 && user.CurrentXP >= user.NextLevelXP {
		user.CurrentXP -= user.NextLevelXP
		user.Level++
		user.NextLevelXP = user.NextLevelXP * 3 / 2
		user.MaxHP += hpPerLevel
		user.CurrentHP = user.MaxHP
	}

	if attribute != "" {
		st, ok := user.Attr(attribute)
		if !ok {
			return ErrValidation
		}
		*st.XP += amount
		for *st.XP >= attrXPPerLevel {
			*st.XP -= attrXPPerLevel
			*st.Level++
		}
	}

	if err := db.Save(user).Error; err != nil {
		return err
	}

	// Leaderboard ordering depends on (level, xp); drop the cached copy.
	utils.InvalidateByPrefix(leaderboardCachePrefix)
	return nil
}

// leaderboardCachePrefix is shared with the stats controller.
const leaderboardCachePrefix = "cache:leaderboard"

// LeaderboardCacheKey is the Redis key holding the serialized leaderboard.
const LeaderboardCacheKey = leaderboardCachePrefix + ":global"

// BaseXP returns the base reward for a habit of the given frequency.
func BaseXP(frequency string) int {
	switch frequency {
	case models.FreqWeekly:
		return 100
	case models.FreqMonthly:
		return 150
	default:
		return 50
	}
}

// XPForDifficulty sizes a habit's reward from its difficulty score (1-10)
// and frequency: base * (0.7 + difficulty/20), clamped to [40, 200].
func XPForDifficulty(difficulty int, frequency string) int {
	if difficulty < 1 {
		difficulty = 1
	} else if difficulty > 10 {
		difficulty = 10
	}
	base := BaseXP(frequency)
	xp := int(math.Round(float64(base) * (0.7 + float64(difficulty)/20)))
	if xp < 40 {
		xp = 40
	} else if xp > 200 {
		xp = 200
	}
	return xp
}
