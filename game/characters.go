package game

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
)

// Character is a playable avatar. Characters unlock by level; appearances for
// a character live in the equipment catalog tagged with CharacterSpecific.
type Character struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	UnlockLevel int    `json:"unlock_level"`
}

// CharacterCatalog lists every playable character.
var CharacterCatalog = []Character{
	{Name: "default", DisplayName: "Adventurer", UnlockLevel: 1},
	{Name: "zoro", DisplayName: "Zoro", UnlockLevel: 1},
	{Name: "cyberpunk", DisplayName: "Cyberpunk", UnlockLevel: 3},
}

// CharacterByName looks up a character definition.
func CharacterByName(name string) (Character, bool) {
	for _, c := range CharacterCatalog {
		if c.Name == name {
			return c, true
		}
	}
	return Character{}, false
}

// SelectCharacter switches the user's avatar after validating the level gate,
// then re-resolves the default appearance equip state: the new character's
// default appearance is granted if missing and equipped, displacing whatever
// appearance was equipped before.
func SelectCharacter(db *gorm.DB, user *models.User, name string) error {
	ch, ok := CharacterByName(name)
	if !ok {
		return ErrNotFound
	}
	if user.Level < ch.UnlockLevel {
		return ErrNotUnlocked
	}

	user.SelectedCharacter = ch.Name
	if err := db.Save(user).Error; err != nil {
		return err
	}

	var appearance models.Equipment
	err := db.Where("character_specific = ? AND is_default = ?", ch.Name, true).First(&appearance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No seeded appearance for this character; selection still stands.
		return nil
	}
	if err != nil {
		return err
	}

	ue, _, err := Grant(db, user.ID, appearance.ID)
	if err != nil {
		return err
	}
	if ue.IsEquipped {
		return nil
	}
	_, _, err = ToggleEquip(db, user, appearance.ID)
	return err
}
