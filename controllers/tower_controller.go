package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// TowerController drives the endless tower mini-game.
type TowerController struct {
	db *gorm.DB
}

// NewTowerController creates a TowerController.
func NewTowerController(db *gorm.DB) *TowerController {
	return &TowerController{db: db}
}

// Progress returns the user's current and highest floor, creating the
// record on first access.
func (t *TowerController) Progress(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var progress models.TowerProgress
	err := t.db.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.TowerProgress{UserID: userID, CurrentFloor: 1, HighestFloor: 1}
		err = t.db.Create(&progress).Error
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load tower progress")
		return
	}

	utils.Success(ctx, progress)
}

// StartFloor generates the encounter waves for the user's current floor.
func (t *TowerController) StartFloor(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var progress models.TowerProgress
	err := t.db.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.TowerProgress{UserID: userID, CurrentFloor: 1, HighestFloor: 1}
		err = t.db.Create(&progress).Error
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load tower progress")
		return
	}

	utils.Success(ctx, gin.H{
		"floor": progress.CurrentFloor,
		"waves": game.StartFloor(progress.CurrentFloor),
	})
}

// CompleteFloor records a cleared floor: XP, loot, advancement and
// achievement re-evaluation happen in one transaction.
func (t *TowerController) CompleteFloor(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, t.db)
	if !ok {
		return
	}

	reward, err := game.CompleteFloor(t.db, user)
	if err != nil {
		respondGameError(ctx, err, 50062)
		return
	}

	utils.Success(ctx, reward)
}
