package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/utils"
)

// CharacterController serves the character catalog and selection.
type CharacterController struct {
	db *gorm.DB
}

// NewCharacterController creates a CharacterController.
func NewCharacterController(db *gorm.DB) *CharacterController {
	return &CharacterController{db: db}
}

// List returns all characters with unlock state for the current user.
func (c *CharacterController) List(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, c.db)
	if !ok {
		return
	}

	type characterView struct {
		game.Character
		IsUnlocked bool `json:"is_unlocked"`
		IsSelected bool `json:"is_selected"`
	}

	out := make([]characterView, 0, len(game.CharacterCatalog))
	for _, ch := range game.CharacterCatalog {
		out = append(out, characterView{
			Character:  ch,
			IsUnlocked: user.Level >= ch.UnlockLevel,
			IsSelected: user.SelectedCharacter == ch.Name,
		})
	}

	utils.Success(ctx, out)
}

// Select switches the user's active character if their level permits.
func (c *CharacterController) Select(ctx *gin.Context) {
	user, ok := loadCurrentUser(ctx, c.db)
	if !ok {
		return
	}

	var req struct {
		Character string `json:"character" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	if err := game.SelectCharacter(c.db, user, req.Character); err != nil {
		respondGameError(ctx, err, 40061)
		return
	}

	utils.Success(ctx, gin.H{
		"selected_character": user.SelectedCharacter,
	})
}
