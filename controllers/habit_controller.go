package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// HabitController manages habit CRUD and daily completion.
type HabitController struct {
	db     *gorm.DB
	scorer game.DifficultyScorer
}

// NewHabitController creates a HabitController.
func NewHabitController(db *gorm.DB) *HabitController {
	return &HabitController{db: db, scorer: game.HeuristicScorer{}}
}

// List returns the user's active habits, newest first.
func (h *HabitController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var habits []models.Habit
	if err := h.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&habits).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load habits")
		return
	}

	today := models.DayKey(time.Now())
	var completions []models.HabitCompletion
	if err := h.db.Where("user_id = ?", userID).
		Order("completed_at").Find(&completions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load completions")
		return
	}
	doneToday := map[uint]bool{}
	lastDone := map[uint]time.Time{}
	for _, c := range completions {
		if c.CompletedOn == today {
			doneToday[c.HabitID] = true
		}
		lastDone[c.HabitID] = c.CompletedAt
	}

	out := make([]habitWithStatus, 0, len(habits))
	for _, habit := range habits {
		item := habitWithStatus{Habit: habit, CompletedToday: doneToday[habit.ID]}
		if last, ok := lastDone[habit.ID]; ok {
			item.LastCompletedAt = &last
		}
		out = append(out, item)
	}

	utils.Success(ctx, out)
}

type habitWithStatus struct {
	models.Habit
	CompletedToday  bool       `json:"completed_today"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// Create registers a new habit. Difficulty and XP reward are sized from the
// habit's name, description and frequency unless the client overrides them.
func (h *HabitController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required,max=200"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Frequency   string `json:"frequency"`
		Difficulty  *int   `json:"difficulty"`
		XPReward    *int   `json:"xp_reward"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "habit name is required")
		return
	}

	frequency := strings.ToLower(strings.TrimSpace(req.Frequency))
	if frequency == "" {
		frequency = models.FreqDaily
	}
	if !models.ValidFrequency(frequency) {
		utils.Error(ctx, http.StatusBadRequest, 40012, "frequency must be daily, weekly or monthly")
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = string(models.AttrHealth)
	}
	if !models.ValidAttribute(category) {
		utils.Error(ctx, http.StatusBadRequest, 40013, "unknown habit category")
		return
	}

	difficulty := h.scorer.Score(name, req.Description, frequency)
	if req.Difficulty != nil {
		difficulty = *req.Difficulty
		if difficulty < 1 || difficulty > 10 {
			utils.Error(ctx, http.StatusBadRequest, 40014, "difficulty must be between 1 and 10")
			return
		}
	}

	xpReward := game.XPForDifficulty(difficulty, frequency)
	if req.XPReward != nil {
		if *req.XPReward < 1 || *req.XPReward > 1000 {
			utils.Error(ctx, http.StatusBadRequest, 40017, "xp_reward must be between 1 and 1000")
			return
		}
		xpReward = *req.XPReward
	}

	habit := models.Habit{
		UserID:      userID,
		Name:        name,
		Description: utils.Sanitize(req.Description),
		Category:    category,
		Frequency:   frequency,
		Difficulty:  difficulty,
		XPReward:    xpReward,
		IsActive:    true,
	}
	if err := h.db.Create(&habit).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create habit")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", habit)
}

// Update modifies name, description or category of an owned habit.
func (h *HabitController) Update(ctx *gin.Context) {
	habit, ok := h.ownedHabit(ctx)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40015, "invalid request payload")
		return
	}

	if req.Name != nil {
		name := utils.Sanitize(strings.TrimSpace(*req.Name))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40011, "habit name is required")
			return
		}
		habit.Name = name
	}
	if req.Description != nil {
		habit.Description = utils.Sanitize(*req.Description)
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if !models.ValidAttribute(category) {
			utils.Error(ctx, http.StatusBadRequest, 40013, "unknown habit category")
			return
		}
		habit.Category = category
	}

	if err := h.db.Save(habit).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update habit")
		return
	}

	utils.Success(ctx, habit)
}

// Delete soft-deletes a habit by flipping is_active; completion history stays
// intact for statistics.
func (h *HabitController) Delete(ctx *gin.Context) {
	habit, ok := h.ownedHabit(ctx)
	if !ok {
		return
	}

	habit.IsActive = false
	if err := h.db.Save(habit).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to delete habit")
		return
	}

	utils.Success(ctx, gin.H{"message": "habit deleted"})
}

// Today lists active habits annotated with whether each was completed today.
func (h *HabitController) Today(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var habits []models.Habit
	if err := h.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&habits).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to load habits")
		return
	}

	today := models.DayKey(time.Now())
	var done []models.HabitCompletion
	if err := h.db.Where("user_id = ? AND completed_on = ?", userID, today).
		Find(&done).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to load completions")
		return
	}

	doneSet := make(map[uint]bool, len(done))
	for _, c := range done {
		doneSet[c.HabitID] = true
	}

	out := make([]habitWithStatus, 0, len(habits))
	for _, habit := range habits {
		out = append(out, habitWithStatus{Habit: habit, CompletedToday: doneSet[habit.ID]})
	}

	utils.Success(ctx, out)
}

// Complete records a habit completion for today, awards XP and re-evaluates
// achievements. A second completion on the same day is rejected; the unique
// index on (habit_id, user_id, completed_on) backs this up under concurrency.
func (h *HabitController) Complete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		HabitID uint   `json:"habit_id" binding:"required"`
		Notes   string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40018, "invalid request payload")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var habit models.Habit
	if err := h.db.Where("id = ? AND user_id = ? AND is_active = ?", req.HabitID, userID, true).
		First(&habit).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "habit not found")
		return
	}

	today := models.DayKey(time.Now())
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.HabitCompletion
		err := tx.Where("habit_id = ? AND user_id = ? AND completed_on = ?", habit.ID, userID, today).
			First(&existing).Error
		if err == nil {
			return game.ErrAlreadyCompletedToday
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		completion := models.HabitCompletion{
			HabitID:     habit.ID,
			UserID:      userID,
			CompletedOn: today,
			CompletedAt: time.Now(),
			XPEarned:    habit.XPReward,
			Notes:       utils.Sanitize(req.Notes),
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return game.ErrAlreadyCompletedToday
			}
			return err
		}

		habit.Streak++
		if err := tx.Save(&habit).Error; err != nil {
			return err
		}

		if err := game.AddXP(tx, &user, habit.XPReward, models.Attribute(habit.Category)); err != nil {
			return err
		}
		return game.EvaluateAchievements(tx, &user, &habit)
	})
	if err != nil {
		if errors.Is(err, game.ErrAlreadyCompletedToday) {
			utils.Error(ctx, http.StatusBadRequest, 40016, "habit already completed today")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50016, "failed to complete habit")
		return
	}

	utils.Success(ctx, gin.H{
		"xp_earned":  habit.XPReward,
		"new_streak": habit.Streak,
		"user": gin.H{
			"level":         user.Level,
			"current_xp":    user.CurrentXP,
			"next_level_xp": user.NextLevelXP,
			"max_hp":        user.MaxHP,
			"current_hp":    user.CurrentHP,
		},
	})
}

func (h *HabitController) ownedHabit(ctx *gin.Context) (*models.Habit, bool) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return nil, false
	}

	var habit models.Habit
	if err := h.db.Where("id = ? AND user_id = ? AND is_active = ?", ctx.Param("id"), userID, true).
		First(&habit).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "habit not found")
		return nil, false
	}
	return &habit, true
}
