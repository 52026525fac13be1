package game

import (
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/models"
)

const wavesPerFloor = 5

// Enemy archetype pools by floor tier. Floors 1-3 draw from the first pool,
// everything above from the second.
var (
	tierOneEnemies = []string{"Slime", "Giant Rat", "Cave Bat", "Goblin"}
	tierTwoEnemies = []string{"Skeleton Warrior", "Orc Brute", "Dark Mage", "Wraith"}
)

// lootPrefixes name loot quality; the prefix index grows with the floor.
var lootPrefixes = []string{"Worn", "Sturdy", "Polished", "Runed", "Mythic"}

// lootSlots are the gear slots a tower drop can occupy.
var lootSlots = []string{
	models.SlotWeapon, models.SlotHelmet, models.SlotChest, models.SlotLegs, models.SlotFeet,
}

// Wave describes one transient enemy encounter. Waves are generated per
// request for client-side simulation and never persisted.
type Wave struct {
	WaveIndex  int    `json:"wave_index"`
	Enemy      string `json:"enemy"`
	HP         int    `json:"hp"`
	Damage     int    `json:"damage"`
	XPReward   int    `json:"xp_reward"`
	GoldReward int    `json:"gold_reward"`
}

var (
	towerRng   = rand.New(rand.NewSource(time.Now().UnixNano()))
	towerRngMu sync.Mutex
)

// StartFloor synthesizes the five enemy waves for the given floor.
func StartFloor(floor int) []Wave {
	towerRngMu.Lock()
	defer towerRngMu.Unlock()
	return startFloor(floor, towerRng)
}

func startFloor(floor int, rng *rand.Rand) []Wave {
	pool := tierOneEnemies
	if floor > 3 {
		pool = tierTwoEnemies
	}

	waves := make([]Wave, 0, wavesPerFloor)
	for i := 0; i < wavesPerFloor; i++ {
		waves = append(waves, Wave{
			WaveIndex:  i,
			Enemy:      pool[rng.Intn(len(pool))],
			HP:         50 + 10*floor + 5*i,
			Damage:     5 + 2*floor + i,
			XPReward:   20 * floor,
			GoldReward: 10 * floor,
		})
	}
	return waves
}

// FloorReward is the outcome of a completed tower floor.
type FloorReward struct {
	XPEarned     int              `json:"xp_earned"`
	Loot         models.Equipment `json:"loot"`
	CurrentFloor int              `json:"current_floor"`
	HighestFloor int              `json:"highest_floor"`
}

// CompleteFloor awards the floor's XP, rolls one persistent loot item,
// grants it unequipped, and advances the floor counters. The current floor
// moves up by exactly one; the highest floor only ever rises.
func CompleteFloor(db *gorm.DB, user *models.User) (*FloorReward, error) {
	towerRngMu.Lock()
	defer towerRngMu.Unlock()
	return completeFloor(db, user, towerRng)
}

func completeFloor(db *gorm.DB, user *models.User, rng *rand.Rand) (*FloorReward, error) {
	var reward *FloorReward
	err := db.Transaction(func(tx *gorm.DB) error {
		// The progress read stays inside the transaction so two overlapping
		// completions cannot both reward the same floor.
		var progress models.TowerProgress
		err := tx.Where("user_id = ?", user.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.TowerProgress{UserID: user.ID, CurrentFloor: 1, HighestFloor: 1}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		floor := progress.CurrentFloor
		loot := rollLoot(floor, rng)

		if err := AddXP(tx, user, TowerFloorXP*floor, ""); err != nil {
			return err
		}

		if err := tx.Create(&loot).Error; err != nil {
			return err
		}
		if _, _, err := Grant(tx, user.ID, loot.ID); err != nil {
			return err
		}

		progress.CurrentFloor++
		if progress.CurrentFloor > progress.HighestFloor {
			progress.HighestFloor = progress.CurrentFloor
		}
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		if err := EvaluateAchievements(tx, user, nil); err != nil {
			return err
		}

		reward = &FloorReward{
			XPEarned:     TowerFloorXP * floor,
			Loot:         loot,
			CurrentFloor: progress.CurrentFloor,
			HighestFloor: progress.HighestFloor,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

// rollLoot generates one random gear item for the floor: a uniform slot, a
// quality prefix that climbs every two floors, and 1+floor/5 distinct
// attribute bonuses each worth 1+floor/2 plus a uniform roll up to the floor.
func rollLoot(floor int, rng *rand.Rand) models.Equipment {
	slot := lootSlots[rng.Intn(len(lootSlots))]

	prefixIdx := floor / 2
	if prefixIdx >= len(lootPrefixes) {
		prefixIdx = len(lootPrefixes) - 1
	}

	attrCount := 1 + floor/5
	if attrCount > len(models.Attributes) {
		attrCount = len(models.Attributes)
	}
	picked := rng.Perm(len(models.Attributes))[:attrCount]

	bonus := datatypes.JSONMap{}
	for _, idx := range picked {
		bonus[string(models.Attributes[idx])] = 1 + floor/2 + rng.Intn(floor+1)
	}

	return models.Equipment{
		Name:          lootPrefixes[prefixIdx] + " " + slotDisplayName(slot),
		EquipmentType: models.EquipTypeGear,
		EquipmentSlot: slot,
		Description:   "Spoils from tower floor " + strconv.Itoa(floor) + ".",
		StatBonus:     bonus,
	}
}

func slotDisplayName(slot string) string {
	switch slot {
	case models.SlotWeapon:
		return "Blade"
	case models.SlotHelmet:
		return "Helm"
	case models.SlotChest:
		return "Chestplate"
	case models.SlotLegs:
		return "Greaves"
	case models.SlotFeet:
		return "Boots"
	default:
		return "Trinket"
	}
}
