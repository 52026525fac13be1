package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
)

func createEquipment(t *testing.T, db *gorm.DB, eq models.Equipment) models.Equipment {
	t.Helper()
	require.NoError(t, db.Create(&eq).Error)
	return eq
}

func TestUnlocked(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "collector")
	user.Level = 2

	defaultTheme := models.Equipment{Name: "Default Theme", EquipmentType: models.EquipTypeTheme, IsDefault: true}
	gatedTheme := models.Equipment{Name: "Dark Theme", EquipmentType: models.EquipTypeTheme, UnlockLevel: 5}
	cyberOutfit := models.Equipment{Name: "Cyberpunk Appearance", EquipmentType: models.EquipTypeOutfit, CharacterSpecific: "cyberpunk", IsDefault: true}
	drop := models.Equipment{Name: "Runed Blade", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotWeapon, UnlockLevel: 99}

	assert.True(t, Unlocked(user, &defaultTheme, false), "default themes are always unlocked")
	assert.False(t, Unlocked(user, &gatedTheme, false), "level 2 cannot use a level 5 theme")
	assert.False(t, Unlocked(user, &cyberOutfit, false), "appearance gated by its character's level")
	assert.False(t, Unlocked(user, &drop, false), "tower loot is ownership-only")
	assert.True(t, Unlocked(user, &drop, true), "owning an item overrides every gate")

	user.Level = 3
	assert.True(t, Unlocked(user, &cyberOutfit, false))
	user.Level = 5
	assert.True(t, Unlocked(user, &gatedTheme, false))
}

func TestToggleEquipDisplacesSameSlot(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "warrior")

	sword := createEquipment(t, db, models.Equipment{Name: "Worn Blade", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotWeapon})
	axe := createEquipment(t, db, models.Equipment{Name: "Sturdy Blade", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotWeapon})
	helm := createEquipment(t, db, models.Equipment{Name: "Worn Helm", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotHelmet})

	for _, eq := range []models.Equipment{sword, axe, helm} {
		_, _, err := Grant(db, user.ID, eq.ID)
		require.NoError(t, err)
	}

	for _, eq := range []models.Equipment{sword, helm} {
		ue, _, err := ToggleEquip(db, user, eq.ID)
		require.NoError(t, err)
		assert.True(t, ue.IsEquipped)
	}

	// Equipping a second weapon unequips the first but leaves the helmet.
	_, _, err := ToggleEquip(db, user, axe.ID)
	require.NoError(t, err)

	equipped := equippedIDs(t, db, user.ID)
	assert.NotContains(t, equipped, sword.ID)
	assert.Contains(t, equipped, axe.ID)
	assert.Contains(t, equipped, helm.ID)
}

func TestToggleEquipDisplacesSameTypeWhenSlotless(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "decorator")

	light := createEquipment(t, db, models.Equipment{Name: "Default Theme", EquipmentType: models.EquipTypeTheme, IsDefault: true})
	dark := createEquipment(t, db, models.Equipment{Name: "Dark Theme", EquipmentType: models.EquipTypeTheme})

	for _, eq := range []models.Equipment{light, dark} {
		_, _, err := Grant(db, user.ID, eq.ID)
		require.NoError(t, err)
	}

	_, _, err := ToggleEquip(db, user, light.ID)
	require.NoError(t, err)
	_, _, err = ToggleEquip(db, user, dark.ID)
	require.NoError(t, err)

	equipped := equippedIDs(t, db, user.ID)
	assert.NotContains(t, equipped, light.ID)
	assert.Contains(t, equipped, dark.ID)
}

func TestToggleEquipTwiceUnequips(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "fiddler")

	sword := createEquipment(t, db, models.Equipment{Name: "Worn Blade", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotWeapon})
	_, _, err := Grant(db, user.ID, sword.ID)
	require.NoError(t, err)

	ue, _, err := ToggleEquip(db, user, sword.ID)
	require.NoError(t, err)
	assert.True(t, ue.IsEquipped)

	ue, _, err = ToggleEquip(db, user, sword.ID)
	require.NoError(t, err)
	assert.False(t, ue.IsEquipped)
}

func TestToggleEquipErrors(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "chancer")

	_, _, err := ToggleEquip(db, user, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	unowned := createEquipment(t, db, models.Equipment{Name: "Mythic Helm", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotHelmet})
	_, _, err = ToggleEquip(db, user, unowned.ID)
	assert.ErrorIs(t, err, ErrNotUnlocked)
}

func TestEffectiveAttributes(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "minmaxer")
	user.Strength = 4
	require.NoError(t, db.Save(user).Error)

	sword := createEquipment(t, db, models.Equipment{
		Name:          "Runed Blade",
		EquipmentType: models.EquipTypeGear,
		EquipmentSlot: models.SlotWeapon,
		StatBonus:     datatypes.JSONMap{"strength": 3, "health": 1},
	})
	_, _, err := Grant(db, user.ID, sword.ID)
	require.NoError(t, err)

	// Not yet equipped: bonuses do not apply.
	attrs, err := EffectiveAttributes(db, user)
	require.NoError(t, err)
	assert.Equal(t, 4, attrs[models.AttrStrength])

	_, _, err = ToggleEquip(db, user, sword.ID)
	require.NoError(t, err)

	attrs, err = EffectiveAttributes(db, user)
	require.NoError(t, err)
	assert.Equal(t, 7, attrs[models.AttrStrength])
	assert.Equal(t, 2, attrs[models.AttrHealth])
	assert.Equal(t, 1, attrs[models.AttrIntelligence])
}

func TestGrantIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "hoarder")

	sword := createEquipment(t, db, models.Equipment{Name: "Worn Blade", EquipmentType: models.EquipTypeGear, EquipmentSlot: models.SlotWeapon})

	_, created, err := Grant(db, user.ID, sword.ID)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = Grant(db, user.ID, sword.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.UserEquipment{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func equippedIDs(t *testing.T, db *gorm.DB, userID uint) []uint {
	t.Helper()
	var rows []models.UserEquipment
	require.NoError(t, db.Where("user_id = ? AND is_equipped = ?", userID, true).Find(&rows).Error)
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.EquipmentID)
	}
	return ids
}
