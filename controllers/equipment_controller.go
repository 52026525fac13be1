package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

// EquipmentController serves the equipment catalog and equip toggling.
type EquipmentController struct {
	db *gorm.DB
}

// NewEquipmentController creates an EquipmentController.
func NewEquipmentController(db *gorm.DB) *EquipmentController {
	return &EquipmentController{db: db}
}

type equipmentView struct {
	models.Equipment
	IsUnlocked bool `json:"is_unlocked"`
	IsOwned    bool `json:"is_owned"`
	IsEquipped bool `json:"is_equipped"`
}

// List returns the full catalog annotated with unlock, ownership and equip
// state. Ownership is loaded in one query to avoid a per-item lookup.
func (e *EquipmentController) List(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, e.db)
	if !ok {
		return
	}

	query := e.db.Order("unlock_level, name")
	if t := ctx.Query("type"); t != "" {
		query = query.Where("equipment_type = ?", t)
	}

	var catalog []models.Equipment
	if err := query.Find(&catalog).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load equipment")
		return
	}

	var owned []models.UserEquipment
	if err := e.db.Where("user_id = ?", user.ID).Find(&owned).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load inventory")
		return
	}
	ownedByEquipment := make(map[uint]models.UserEquipment, len(owned))
	for _, ue := range owned {
		ownedByEquipment[ue.EquipmentID] = ue
	}

	out := make([]equipmentView, 0, len(catalog))
	for _, eq := range catalog {
		ue, isOwned := ownedByEquipment[eq.ID]
		out = append(out, equipmentView{
			Equipment:  eq,
			IsUnlocked: game.Unlocked(user, &eq, isOwned),
			IsOwned:    isOwned,
			IsEquipped: isOwned && ue.IsEquipped,
		})
	}

	utils.Success(ctx, out)
}

// Equip toggles the equip state of an item. Equipping displaces whatever
// currently occupies the same slot or type.
func (e *EquipmentController) Equip(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, e.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid equipment id")
		return
	}

	ue, eq, err := game.ToggleEquip(e.db, user, uint(id))
	if err != nil {
		respondGameError(ctx, err, 40041)
		return
	}

	utils.Success(ctx, gin.H{
		"equipment":   eq,
		"is_equipped": ue.IsEquipped,
	})
}

// Equipped lists the user's currently equipped items.
func (e *EquipmentController) Equipped(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var rows []models.UserEquipment
	if err := e.db.Preload("Equipment").
		Where("user_id = ? AND is_equipped = ?", userID, true).
		Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load equipped items")
		return
	}

	out := make([]models.Equipment, 0, len(rows))
	for _, ue := range rows {
		out = append(out, ue.Equipment)
	}

	utils.Success(ctx, out)
}
