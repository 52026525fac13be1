package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyuew/habitquest/models"
)

func TestStatsSummary(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice")

	habit := createHabit(t, env, token, map[string]interface{}{
		"name":     "Lift weights",
		"category": "strength",
	})
	w, _ := env.request(t, http.MethodPost, "/api/v1/habits/complete", token, map[string]interface{}{"habit_id": habit.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.request(t, http.MethodGet, "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Level            int            `json:"level"`
		CurrentXP        int            `json:"current_xp"`
		Attributes       map[string]int `json:"attributes"`
		TotalCompletions int64          `json:"total_completions"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, habit.XPReward, stats.CurrentXP)
	assert.Equal(t, int64(1), stats.TotalCompletions)
	assert.Equal(t, 1, stats.Attributes["strength"])
}

func TestDetailedStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "bob")

	strength := createHabit(t, env, token, map[string]interface{}{"name": "Push-ups", "category": "strength"})
	social := createHabit(t, env, token, map[string]interface{}{"name": "Call a friend", "category": "social"})
	for _, h := range []models.Habit{strength, social} {
		w, _ := env.request(t, http.MethodPost, "/api/v1/habits/complete", token, map[string]interface{}{"habit_id": h.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := env.request(t, http.MethodGet, "/api/v1/stats/detailed", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detailed struct {
		RecentCompletions []struct {
			HabitName string `json:"habit_name"`
			Category  string `json:"category"`
			XPEarned  int    `json:"xp_earned"`
		} `json:"recent_completions"`
		ByCategory []struct {
			Category    string `json:"category"`
			Completions int64  `json:"completions"`
			TotalXP     int64  `json:"total_xp"`
		} `json:"by_category"`
		BestStreak int `json:"best_streak"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detailed))
	assert.Len(t, detailed.RecentCompletions, 2)
	assert.Len(t, detailed.ByCategory, 2)
	assert.Equal(t, 1, detailed.BestStreak)
}

func TestLeaderboardOrdering(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "lowbie")
	env.register(t, "highroller")

	require.NoError(t, env.db.Model(&models.User{}).
		Where("username = ?", "highroller").
		Updates(map[string]interface{}{"level": 5, "current_xp": 10}).Error)

	w, resp := env.request(t, http.MethodGet, "/api/v1/leaderboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []struct {
		Rank     int    `json:"rank"`
		Username string `json:"username"`
		Level    int    `json:"level"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "highroller", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "lowbie", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestAchievementListProgress(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "carol")

	require.NoError(t, env.db.Create(&models.Achievement{
		Name:             "Getting Started",
		RequirementType:  models.ReqStreak,
		RequirementValue: 3,
		RewardXP:         25,
	}).Error)
	require.NoError(t, env.db.Create(&models.Achievement{
		Name:             "Novice",
		RequirementType:  models.ReqLevel,
		RequirementValue: 1,
		RewardXP:         30,
	}).Error)

	habit := createHabit(t, env, token, map[string]interface{}{"name": "Stretch"})
	w, _ := env.request(t, http.MethodPost, "/api/v1/habits/complete", token, map[string]interface{}{"habit_id": habit.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.request(t, http.MethodGet, "/api/v1/achievements", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []struct {
		Name       string `json:"name"`
		IsUnlocked bool   `json:"is_unlocked"`
		Progress   int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list, 2)

	byName := map[string]bool{}
	for _, a := range list {
		byName[a.Name] = a.IsUnlocked
	}
	assert.False(t, byName["Getting Started"], "one completion is not a 3-day streak")
	assert.True(t, byName["Novice"], "a level requirement of 1 unlocks immediately")

	w, resp = env.request(t, http.MethodGet, "/api/v1/achievements/unlocked", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unlocked []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &unlocked))
	require.Len(t, unlocked, 1)
	assert.Equal(t, "Novice", unlocked[0].Name)
}
