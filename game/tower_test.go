package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyuew/habitquest/models"
)

func TestStartFloorWaveScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	waves := startFloor(3, rng)
	require.Len(t, waves, 5)

	for i, w := range waves {
		assert.Equal(t, i, w.WaveIndex)
		assert.Equal(t, 50+10*3+5*i, w.HP)
		assert.Equal(t, 5+2*3+i, w.Damage)
		assert.Equal(t, 60, w.XPReward)
		assert.Equal(t, 30, w.GoldReward)
		assert.Contains(t, tierOneEnemies, w.Enemy, "floors 1-3 draw from the first pool")
	}
}

func TestStartFloorEnemyTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for _, w := range startFloor(4, rng) {
		assert.Contains(t, tierTwoEnemies, w.Enemy, "floors above 3 draw from the second pool")
	}
}

func TestCompleteFloorAdvancesAndRewards(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "climber")
	rng := rand.New(rand.NewSource(3))

	reward, err := completeFloor(db, user, rng)
	require.NoError(t, err)

	assert.Equal(t, 100, reward.XPEarned, "floor 1 pays 100 XP")
	assert.Equal(t, 2, reward.CurrentFloor)
	assert.Equal(t, 2, reward.HighestFloor)
	assert.Equal(t, 2, user.Level, "100 XP levels a fresh user")

	var progress models.TowerProgress
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&progress).Error)
	assert.Equal(t, 2, progress.CurrentFloor)
	assert.Equal(t, 2, progress.HighestFloor)

	// The loot landed in the inventory, unequipped.
	var grants []models.UserEquipment
	require.NoError(t, db.Preload("Equipment").Where("user_id = ?", user.ID).Find(&grants).Error)
	require.Len(t, grants, 1)
	assert.False(t, grants[0].IsEquipped)
	assert.Equal(t, models.EquipTypeGear, grants[0].Equipment.EquipmentType)
}

func TestCompleteFloorHighestNeverDecreases(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "grinder")
	rng := rand.New(rand.NewSource(4))

	require.NoError(t, db.Create(&models.TowerProgress{
		UserID: user.ID, CurrentFloor: 2, HighestFloor: 7,
	}).Error)

	reward, err := completeFloor(db, user, rng)
	require.NoError(t, err)

	assert.Equal(t, 200, reward.XPEarned, "floor 2 pays 200 XP")
	assert.Equal(t, 3, reward.CurrentFloor)
	assert.Equal(t, 7, reward.HighestFloor)
}

func TestRollLootScalesWithFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	low := rollLoot(1, rng)
	assert.True(t, strings.HasPrefix(low.Name, "Worn "), "floor 1 loot is Worn, got %q", low.Name)
	assert.Len(t, low.StatBonus, 1)
	assert.Contains(t, lootSlots, low.EquipmentSlot)

	high := rollLoot(12, rng)
	assert.True(t, strings.HasPrefix(high.Name, "Mythic "), "prefix index clamps at the last entry")
	assert.Len(t, high.StatBonus, 3)
	for attr, v := range high.StatBonus {
		assert.True(t, models.ValidAttribute(attr))
		bonus, ok := v.(int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, bonus, 1+12/2)
		assert.LessOrEqual(t, bonus, 1+12/2+12)
	}
}

func TestCompleteFloorPaysEachFloorOnce(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "repeater")
	rng := rand.New(rand.NewSource(7))

	// Consecutive completions reward floors 1, 2, 3; the row committed by
	// one call is what the next one reads, so no floor pays twice.
	for floor := 1; floor <= 3; floor++ {
		reward, err := completeFloor(db, user, rng)
		require.NoError(t, err)
		assert.Equal(t, 100*floor, reward.XPEarned)
		assert.Equal(t, floor+1, reward.CurrentFloor)
	}

	var progress models.TowerProgress
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&progress).Error)
	assert.Equal(t, 4, progress.CurrentFloor)
	assert.Equal(t, 4, progress.HighestFloor)
}
