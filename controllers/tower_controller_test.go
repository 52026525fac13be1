package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyuew/habitquest/models"
)

func TestTowerProgressCreatedOnFirstAccess(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice")

	w, resp := env.request(t, http.MethodGet, "/api/v1/tower/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var progress models.TowerProgress
	require.NoError(t, json.Unmarshal(resp.Data, &progress))
	assert.Equal(t, 1, progress.CurrentFloor)
	assert.Equal(t, 1, progress.HighestFloor)
}

func TestTowerStartFloorWaves(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "bob")

	w, resp := env.request(t, http.MethodPost, "/api/v1/tower/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var encounter struct {
		Floor int `json:"floor"`
		Waves []struct {
			WaveIndex  int    `json:"wave_index"`
			Enemy      string `json:"enemy"`
			HP         int    `json:"hp"`
			Damage     int    `json:"damage"`
			XPReward   int    `json:"xp_reward"`
			GoldReward int    `json:"gold_reward"`
		} `json:"waves"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &encounter))
	assert.Equal(t, 1, encounter.Floor)
	require.Len(t, encounter.Waves, 5)
	assert.Equal(t, 60, encounter.Waves[0].HP)
	assert.Equal(t, 80, encounter.Waves[4].HP)
	assert.Equal(t, 20, encounter.Waves[0].XPReward)
}

func TestTowerCompleteFloor(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "carol")

	w, resp := env.request(t, http.MethodPost, "/api/v1/tower/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reward struct {
		XPEarned     int              `json:"xp_earned"`
		Loot         models.Equipment `json:"loot"`
		CurrentFloor int              `json:"current_floor"`
		HighestFloor int              `json:"highest_floor"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &reward))
	assert.Equal(t, 100, reward.XPEarned)
	assert.Equal(t, 2, reward.CurrentFloor)
	assert.Equal(t, 2, reward.HighestFloor)
	assert.NotZero(t, reward.Loot.ID)
	assert.Equal(t, models.EquipTypeGear, reward.Loot.EquipmentType)

	// The loot is owned but not auto-equipped.
	var user models.User
	require.NoError(t, env.db.Where("username = ?", "carol").First(&user).Error)
	var grants []models.UserEquipment
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&grants).Error)
	require.Len(t, grants, 1)
	assert.False(t, grants[0].IsEquipped)
}
