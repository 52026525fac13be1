package game

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// Seed loads the static achievement and equipment catalogs and the demo
// accounts. It is an explicit deployment step (main launches it behind the
// -seed flag), idempotent via get-or-create on natural keys; rows that exist
// already are counted as conflicts and skipped, never treated as fatal.
func Seed(db *gorm.DB) error {
	if err := seedAchievements(db); err != nil {
		return err
	}
	if err := seedEquipment(db); err != nil {
		return err
	}
	return seedDemoUsers(db)
}

func seedAchievements(db *gorm.DB) error {
	defs := []models.Achievement{
		{Name: "Getting Started", Description: "Complete a habit 3 days in a row.", RequirementType: models.ReqStreak, RequirementValue: 3, RewardXP: 25, RewardDescription: "Your first streak unlocked!", Icon: "fire-1"},
		{Name: "On a Roll", Description: "Maintain a 7-day streak on any habit.", RequirementType: models.ReqStreak, RequirementValue: 7, RewardXP: 50, RewardDescription: "You are unstoppable!", Icon: "fire-7"},
		{Name: "Dedication", Description: "Maintain a 14-day streak on any habit.", RequirementType: models.ReqStreak, RequirementValue: 14, RewardXP: 100, RewardDescription: "Two weeks of pure dedication!", Icon: "fire-14"},
		{Name: "Iron Discipline", Description: "Maintain a 30-day streak on any habit.", RequirementType: models.ReqStreak, RequirementValue: 30, RewardXP: 200, RewardDescription: "A whole month of consistency!", Icon: "fire-30"},

		{Name: "Muscle Apprentice", Description: "Reach Strength level 3.", RequirementType: models.ReqAttributeLevel, RequirementValue: 3, RequirementCategory: "strength", RewardXP: 50, RewardDescription: "Growing stronger each day!", Icon: "muscle-1"},
		{Name: "Strength Master", Description: "Reach Strength level 10.", RequirementType: models.ReqAttributeLevel, RequirementValue: 10, RequirementCategory: "strength", RewardXP: 150, RewardDescription: "You are incredibly strong!", Icon: "muscle-10"},
		{Name: "Curious Mind", Description: "Reach Intelligence level 3.", RequirementType: models.ReqAttributeLevel, RequirementValue: 3, RequirementCategory: "intelligence", RewardXP: 50, RewardDescription: "Knowledge is power!", Icon: "brain-1"},
		{Name: "Intellectual Elite", Description: "Reach Intelligence level 10.", RequirementType: models.ReqAttributeLevel, RequirementValue: 10, RequirementCategory: "intelligence", RewardXP: 150, RewardDescription: "Your wisdom is legendary!", Icon: "brain-10"},
		{Name: "Creative Spark", Description: "Reach Creativity level 3.", RequirementType: models.ReqAttributeLevel, RequirementValue: 3, RequirementCategory: "creativity", RewardXP: 50, RewardDescription: "Your creativity is growing!", Icon: "art-1"},
		{Name: "Creative Visionary", Description: "Reach Creativity level 10.", RequirementType: models.ReqAttributeLevel, RequirementValue: 10, RequirementCategory: "creativity", RewardXP: 150, RewardDescription: "You are an artist beyond compare!", Icon: "art-10"},
		{Name: "Social Butterfly", Description: "Reach Social level 3.", RequirementType: models.ReqAttributeLevel, RequirementValue: 3, RequirementCategory: "social", RewardXP: 50, RewardDescription: "You are becoming quite sociable!", Icon: "social-1"},
		{Name: "Life of the Party", Description: "Reach Social level 10.", RequirementType: models.ReqAttributeLevel, RequirementValue: 10, RequirementCategory: "social", RewardXP: 150, RewardDescription: "Everyone loves being around you!", Icon: "social-10"},
		{Name: "Wellness Beginner", Description: "Reach Health level 3.", RequirementType: models.ReqAttributeLevel, RequirementValue: 3, RequirementCategory: "health", RewardXP: 50, RewardDescription: "Your health is improving!", Icon: "health-1"},
		{Name: "Health Champion", Description: "Reach Health level 10.", RequirementType: models.ReqAttributeLevel, RequirementValue: 10, RequirementCategory: "health", RewardXP: 150, RewardDescription: "You are a picture of perfect health!", Icon: "health-10"},

		{Name: "Rookie", Description: "Reach Level 5.", RequirementType: models.ReqLevel, RequirementValue: 5, RewardXP: 50, RewardDescription: "Welcome to your adventure!", Icon: "level-5"},
		{Name: "Veteran", Description: "Reach Level 10.", RequirementType: models.ReqLevel, RequirementValue: 10, RewardXP: 100, RewardDescription: "You have come far on this journey!", Icon: "level-10"},
		{Name: "Master", Description: "Reach Level 20.", RequirementType: models.ReqLevel, RequirementValue: 20, RewardXP: 200, RewardDescription: "You have mastered the art of habit building!", Icon: "level-20"},
		{Name: "Legend", Description: "Reach Level 30.", RequirementType: models.ReqLevel, RequirementValue: 30, RewardXP: 300, RewardDescription: "You are a legend among habit trackers!", Icon: "level-30"},

		{Name: "First Steps", Description: "Complete 10 habits.", RequirementType: models.ReqTotalCompletions, RequirementValue: 10, RewardXP: 25, RewardDescription: "You are building momentum!", Icon: "completion-10"},
		{Name: "Habit Builder", Description: "Complete 50 habits.", RequirementType: models.ReqTotalCompletions, RequirementValue: 50, RewardXP: 75, RewardDescription: "You are a true habit builder!", Icon: "completion-50"},
		{Name: "Completion Master", Description: "Complete 100 habits.", RequirementType: models.ReqTotalCompletions, RequirementValue: 100, RewardXP: 150, RewardDescription: "You have completed a century of habits!", Icon: "completion-100"},
		{Name: "Unstoppable Force", Description: "Complete 250 habits.", RequirementType: models.ReqTotalCompletions, RequirementValue: 250, RewardXP: 250, RewardDescription: "Nothing can stop your progress!", Icon: "completion-250"},
	}

	created, skipped := 0, 0
	for i := range defs {
		var existing models.Achievement
		err := db.Where("name = ?", defs[i].Name).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&defs[i]).Error; err != nil {
			utils.Sugar.Warnw("achievement seed conflict", "name", defs[i].Name, "err", err)
			skipped++
			continue
		}
		created++
	}
	utils.Sugar.Infow("seeded achievements", "created", created, "skipped", skipped)
	return nil
}

func seedEquipment(db *gorm.DB) error {
	items := []models.Equipment{
		// Character appearances
		{Name: "Default Appearance", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/default/level1-default.png", CharacterSpecific: "default", Description: "Default character appearance.", StatBonus: datatypes.JSONMap{}, UnlockRequirement: "Always available.", IsDefault: true},
		{Name: "Zoro", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/zoro/zoro-default.png", CharacterSpecific: "zoro", Description: "Zoro in his standard appearance.", StatBonus: datatypes.JSONMap{}, UnlockLevel: 1, UnlockRequirement: "Unlocked at Level 1", IsDefault: true},
		{Name: "Zoro with Sword", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/zoro/zoro-sword.png", CharacterSpecific: "zoro", Description: "Zoro wielding his legendary sword.", StatBonus: datatypes.JSONMap{"strength": 5}, UnlockLevel: 3, UnlockRequirement: "Unlocked at Level 3"},
		{Name: "Cyberpunk", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/cyberpunk/cyberpunk-default.png", CharacterSpecific: "cyberpunk", Description: "Cyberpunk in their default appearance.", StatBonus: datatypes.JSONMap{}, UnlockLevel: 3, UnlockRequirement: "Unlocked at Level 3", IsDefault: true},
		{Name: "Cyberpunk Corrupted", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/cyberpunk/cyberpunk-corrupted.png", CharacterSpecific: "cyberpunk", Description: "Cyberpunk in corrupted form with enhanced abilities.", StatBonus: datatypes.JSONMap{"intelligence": 3, "creativity": 2}, UnlockLevel: 4, UnlockRequirement: "Unlocked at Level 4"},
		{Name: "Cyberpunk Ascended", EquipmentType: models.EquipTypeAccessory, EquipmentSlot: models.SlotArmor, SpritePath: "characters/cyberpunk/cyberpunk-ascended.png", CharacterSpecific: "cyberpunk", Description: "Cyberpunk in ascended form with maximum power.", StatBonus: datatypes.JSONMap{"intelligence": 5, "creativity": 3, "strength": 2}, UnlockLevel: 5, UnlockRequirement: "Unlocked at Level 5"},

		// Themes
		{Name: "Default Theme", EquipmentType: models.EquipTypeTheme, Description: "Clean white background theme.", StatBonus: datatypes.JSONMap{}, UnlockRequirement: "Default theme. Always unlocked.", IsDefault: true},
		{Name: "Forest Green", EquipmentType: models.EquipTypeTheme, Description: "Lush green forest theme for natural harmony.", StatBonus: datatypes.JSONMap{"health": 2}, UnlockLevel: 1, UnlockRequirement: "Reach Level 1"},
		{Name: "Forest Pixel", EquipmentType: models.EquipTypeTheme, Description: "Pixel art forest theme with retro vibes.", StatBonus: datatypes.JSONMap{"health": 2}, UnlockLevel: 1, UnlockRequirement: "Reach Level 1"},
		{Name: "Forest Standard", EquipmentType: models.EquipTypeTheme, Description: "Classic forest theme with natural beauty.", StatBonus: datatypes.JSONMap{"health": 2}, UnlockLevel: 1, UnlockRequirement: "Reach Level 1"},
		{Name: "Pixel Forest", EquipmentType: models.EquipTypeTheme, Description: "Retro pixel art forest with nostalgic charm.", StatBonus: datatypes.JSONMap{"creativity": 2, "health": 1}, UnlockLevel: 2, UnlockRequirement: "Unlocked at Level 2"},
		{Name: "Shattered Sky", EquipmentType: models.EquipTypeTheme, Description: "Mystical shattered sky with ethereal atmosphere.", StatBonus: datatypes.JSONMap{"intelligence": 3, "creativity": 2}, UnlockLevel: 3, UnlockRequirement: "Unlocked at Level 3"},
	}

	created, skipped := 0, 0
	for i := range items {
		var existing models.Equipment
		err := db.Where("name = ? AND equipment_type = ?", items[i].Name, items[i].EquipmentType).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&items[i]).Error; err != nil {
			utils.Sugar.Warnw("equipment seed conflict", "name", items[i].Name, "err", err)
			skipped++
			continue
		}
		created++
	}
	utils.Sugar.Infow("seeded equipment", "created", created, "skipped", skipped)
	return nil
}

func seedDemoUsers(db *gorm.DB) error {
	demos := []struct {
		username string
		display  string
		email    string
	}{
		{"johndoe", "John Doe", "john@example.com"},
		{"reese", "Reese", "reese@example.com"},
	}

	for _, d := range demos {
		var existing models.User
		err := db.Where("username = ?", d.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := utils.HashPassword("demo123")
		if err != nil {
			return err
		}
		user := models.User{Username: d.username, DisplayName: d.display, Email: d.email, PasswordHash: hash}
		if err := db.Create(&user).Error; err != nil {
			utils.Sugar.Warnw("demo user seed conflict", "username", d.username, "err", err)
			continue
		}
		if err := db.Create(&models.TowerProgress{UserID: user.ID, CurrentFloor: 1, HighestFloor: 1}).Error; err != nil {
			return err
		}
		if err := GrantStarterItems(db, &user); err != nil {
			return err
		}
		utils.Sugar.Infow("created demo user", "username", d.username)
	}
	return nil
}

// GrantStarterItems gives a new user the default appearance and theme,
// both equipped. Missing catalog entries are skipped so registration works
// on an unseeded database.
func GrantStarterItems(db *gorm.DB, user *models.User) error {
	starters := []struct {
		name  string
		eType string
	}{
		{"Default Appearance", models.EquipTypeAccessory},
		{"Default Theme", models.EquipTypeTheme},
	}

	for _, s := range starters {
		var eq models.Equipment
		err := db.Where("name = ? AND equipment_type = ?", s.name, s.eType).First(&eq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		ue, _, err := Grant(db, user.ID, eq.ID)
		if err != nil {
			return err
		}
		if !ue.IsEquipped {
			if _, _, err := ToggleEquip(db, user, eq.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
