package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Equipment types and slots.
const (
	EquipTypeOutfit    = "outfit"
	EquipTypeAccessory = "accessory"
	EquipTypeTheme     = "theme"
	EquipTypeGear      = "gear"

	SlotWeapon = "weapon"
	SlotHelmet = "helmet"
	SlotChest  = "chest"
	SlotLegs   = "legs"
	SlotFeet   = "feet"
	SlotArmor  = "armor"
)

// Equipment is a catalog item: a character appearance, a theme, or a piece of
// gear dropped by the tower. StatBonus maps attribute name to an integer
// bonus applied while the item is equipped. UnlockLevel is the structured
// unlock rule (0 means no level gate); UnlockRequirement is display text only.
type Equipment struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"size:255;not null" json:"name"`
	EquipmentType     string            `gorm:"size:32;not null" json:"equipment_type"`
	EquipmentSlot     string            `gorm:"size:32" json:"equipment_slot"`
	SpritePath        string            `gorm:"size:512" json:"sprite_path"`
	Description       string            `gorm:"size:500" json:"description"`
	StatBonus         datatypes.JSONMap `json:"stat_bonus"`
	GoldCost          int               `gorm:"default:0" json:"gold_cost"`
	CharacterSpecific string            `gorm:"size:32" json:"character_specific"`
	IsDefault         bool              `gorm:"default:false" json:"is_default"`
	UnlockLevel       int               `gorm:"default:0" json:"unlock_level"`
	UnlockRequirement string            `gorm:"size:255" json:"unlock_requirement"`
	CreatedAt         time.Time         `json:"created_at"`
}

// BonusFor returns the item's bonus for one attribute, 0 when absent.
// JSONMap numbers are plain ints when set in code but come back as
// json.Number after a database round trip.
func (e *Equipment) BonusFor(a Attribute) int {
	if e.StatBonus == nil {
		return 0
	}
	v, ok := e.StatBonus[string(a)]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

// UserEquipment is the ownership join between a user and a catalog item.
// At most one owned item per exclusivity group may have IsEquipped set; the
// resolver enforces that at the application layer.
type UserEquipment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_user_equipment,unique;not null" json:"user_id"`
	EquipmentID uint      `gorm:"index:idx_user_equipment,unique;not null" json:"equipment_id"`
	IsEquipped  bool      `gorm:"default:false" json:"is_equipped"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Equipment   Equipment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
