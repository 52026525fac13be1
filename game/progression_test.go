package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyuew/habitquest/models"
)

func TestAddXPExactLevelUp(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "leveler")

	require.NoError(t, AddXP(db, user, 100, ""))

	assert.Equal(t, 2, user.Level)
	assert.Equal(t, 0, user.CurrentXP)
	assert.Equal(t, 150, user.NextLevelXP)
	assert.Equal(t, 110, user.MaxHP)
	assert.Equal(t, 110, user.CurrentHP, "level up fully heals")
}

func TestAddXPDoubleLevelUp(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "speedrunner")

	// 250 = 100 (level 2) + 150 (level 3) exactly.
	require.NoError(t, AddXP(db, user, 250, ""))

	assert.Equal(t, 3, user.Level)
	assert.Equal(t, 0, user.CurrentXP)
	assert.Equal(t, 225, user.NextLevelXP)
	assert.Equal(t, 120, user.MaxHP)
}

func TestAddXPLargeAward(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "whale")

	require.NoError(t, AddXP(db, user, 10000, ""))

	// Thresholds: 100, 150, 225, 337, 505, 757, 1135, 1702, 2553 ...
	// 100+150+225+337+505+757+1135+1702 = 4911, next threshold 2553,
	// 10000-4911 = 5089 >= 2553 -> one more level, leaving 2536 < 3829.
	assert.Equal(t, 10, user.Level)
	assert.Equal(t, 2536, user.CurrentXP)
	assert.Equal(t, 3829, user.NextLevelXP)
	assert.GreaterOrEqual(t, user.CurrentXP, 0)
	assert.Less(t, user.CurrentXP, user.NextLevelXP)
}

func TestAddXPNoLevelUp(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "casual")

	require.NoError(t, AddXP(db, user, 99, ""))

	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 99, user.CurrentXP)
	assert.Equal(t, 100, user.MaxHP)
}

func TestAddXPRejectsNegative(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "cheater")

	assert.ErrorIs(t, AddXP(db, user, -5, ""), ErrValidation)
}

func TestAddXPAttributeCascade(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "gymrat")

	// 250 attribute XP crosses the 100-per-level line twice.
	require.NoError(t, AddXP(db, user, 250, models.AttrStrength))

	assert.Equal(t, 3, user.Strength)
	assert.Equal(t, 50, user.StrengthXP)
	// Other attributes untouched.
	assert.Equal(t, 1, user.Intelligence)
	assert.Equal(t, 0, user.IntelligenceXP)
}

func TestAddXPUnknownAttribute(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "mystery")

	assert.ErrorIs(t, AddXP(db, user, 10, models.Attribute("charisma")), ErrValidation)
}

func TestAddXPPersists(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "saver")

	require.NoError(t, AddXP(db, user, 120, models.AttrHealth))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 2, reloaded.Level)
	assert.Equal(t, 20, reloaded.CurrentXP)
	assert.Equal(t, 2, reloaded.Health)
	assert.Equal(t, 20, reloaded.HealthXP)
}

func TestXPForDifficulty(t *testing.T) {
	cases := []struct {
		difficulty int
		frequency  string
		want       int
	}{
		{1, models.FreqDaily, 40},   // 50*0.75=37.5 -> clamped up to 40
		{4, models.FreqDaily, 45},   // 50*0.9
		{10, models.FreqDaily, 60},  // 50*1.2
		{5, models.FreqWeekly, 95},  // 100*0.95
		{6, models.FreqMonthly, 150}, // 150*1.0
		{10, models.FreqMonthly, 180},
		{99, models.FreqMonthly, 180}, // clamped to 10 first
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, XPForDifficulty(tc.difficulty, tc.frequency),
			"difficulty=%d frequency=%s", tc.difficulty, tc.frequency)
	}
}

func TestBaseXP(t *testing.T) {
	assert.Equal(t, 50, BaseXP(models.FreqDaily))
	assert.Equal(t, 100, BaseXP(models.FreqWeekly))
	assert.Equal(t, 150, BaseXP(models.FreqMonthly))
	assert.Equal(t, 50, BaseXP("unknown"))
}
