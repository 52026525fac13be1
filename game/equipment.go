package game

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
)

// Unlocked decides whether the user may see and equip the catalog item,
// given whether an ownership grant exists. An item is unlocked when the user
// owns a grant record, when it is the default appearance of a character the
// user's level has unlocked, when its level gate is met, or when it is a
// default theme. Unlock status is always derived at read time, never stored.
func Unlocked(user *models.User, eq *models.Equipment, owned bool) bool {
	if owned {
		return true
	}
	if eq.IsDefault && eq.EquipmentType == models.EquipTypeTheme {
		return true
	}
	if eq.IsDefault && eq.CharacterSpecific != "" {
		if ch, ok := CharacterByName(eq.CharacterSpecific); ok && user.Level >= ch.UnlockLevel {
			return true
		}
	}
	return eq.UnlockLevel > 0 && user.Level >= eq.UnlockLevel
}

// IsUnlocked is the database-backed form of Unlocked.
func IsUnlocked(db *gorm.DB, user *models.User, eq *models.Equipment) (bool, error) {
	var owned int64
	if err := db.Model(&models.UserEquipment{}).
		Where("user_id = ? AND equipment_id = ?", user.ID, eq.ID).
		Count(&owned).Error; err != nil {
		return false, err
	}
	return Unlocked(user, eq, owned > 0), nil
}

// ToggleEquip flips the equipped flag on the user's grant record for the
// item. Equipping forces every other owned item in the same exclusivity
// group to unequipped: items sharing the slot when the item has one, items
// sharing the equipment type otherwise. Returns ErrNotFound for an unknown
// item and ErrNotUnlocked when the user owns no grant record.
func ToggleEquip(db *gorm.DB, user *models.User, equipmentID uint) (*models.UserEquipment, *models.Equipment, error) {
	var eq models.Equipment
	if err := db.First(&eq, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var ue models.UserEquipment
	if err := db.Where("user_id = ? AND equipment_id = ?", user.ID, eq.ID).First(&ue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &eq, ErrNotUnlocked
		}
		return nil, &eq, err
	}

	ue.IsEquipped = !ue.IsEquipped

	err := db.Transaction(func(tx *gorm.DB) error {
		if ue.IsEquipped {
			group := tx.Model(&models.Equipment{}).Select("id")
			if eq.EquipmentSlot != "" {
				group = group.Where("equipment_slot = ?", eq.EquipmentSlot)
			} else {
				group = group.Where("equipment_type = ?", eq.EquipmentType)
			}
			if err := tx.Model(&models.UserEquipment{}).
				Where("user_id = ? AND id <> ? AND equipment_id IN (?)", user.ID, ue.ID, group).
				Update("is_equipped", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&ue).Error
	})
	if err != nil {
		return nil, &eq, err
	}
	return &ue, &eq, nil
}

// EquippedBonuses sums the stat bonuses of every item the user currently has
// equipped.
func EquippedBonuses(db *gorm.DB, userID uint) (map[models.Attribute]int, error) {
	var rows []models.UserEquipment
	if err := db.Preload("Equipment").
		Where("user_id = ? AND is_equipped = ?", userID, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	bonuses := map[models.Attribute]int{}
	for i := range rows {
		for _, a := range models.Attributes {
			if b := rows[i].Equipment.BonusFor(a); b != 0 {
				bonuses[a] += b
			}
		}
	}
	return bonuses, nil
}

// EffectiveAttributes returns base attribute levels plus equipment bonuses.
func EffectiveAttributes(db *gorm.DB, user *models.User) (map[models.Attribute]int, error) {
	bonuses, err := EquippedBonuses(db, user.ID)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Attribute]int, len(models.Attributes))
	for _, a := range models.Attributes {
		out[a] = user.AttributeLevel(a) + bonuses[a]
	}
	return out, nil
}

// Grant ensures the user owns the item, creating an unequipped grant record
// when missing. Returns the grant and whether it was newly created.
func Grant(db *gorm.DB, userID, equipmentID uint) (*models.UserEquipment, bool, error) {
	var ue models.UserEquipment
	err := db.Where("user_id = ? AND equipment_id = ?", userID, equipmentID).First(&ue).Error
	if err == nil {
		return &ue, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	ue = models.UserEquipment{UserID: userID, EquipmentID: equipmentID}
	if err := db.Create(&ue).Error; err != nil {
		return nil, false, err
	}
	return &ue, true, nil
}
