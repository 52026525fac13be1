package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/middleware"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/utils"
)

const tokenLifetime = 72 * time.Hour

// AuthController handles registration, login and account management.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register handles account registration with bcrypt hashing. New users start
// at level 1 with an empty tower record and the default starter items.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username    string `json:"username" binding:"required,min=3,max=64"`
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		Password    string `json:"password" binding:"required,min=6,max=72"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !validUsername(req.Username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username may only contain letters, digits, '-' and '_'")
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	display := utils.Sanitize(strings.TrimSpace(req.DisplayName))
	if display == "" {
		display = req.Username
	}

	user := models.User{
		Username:     req.Username,
		DisplayName:  display,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.TowerProgress{UserID: user.ID, CurrentFloor: 1, HighestFloor: 1}).Error; err != nil {
			return err
		}
		return game.GrantStarterItems(tx, &user)
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login verifies user credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the token by blacklisting its jti until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	utils.BlacklistToken(claims.ID, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current authenticated user's account information.
func (a *AuthController) Me(ctx *gin.Context) {
	user, ok := a.currentUser(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, user)
}

// ChangePassword verifies the old password before storing the new hash.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := a.currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		utils.Error(ctx, http.StatusForbidden, 40301, "old password does not match")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to hash password")
		return
	}

	user.PasswordHash = hash
	if err := a.db.Save(user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to update password")
		return
	}

	utils.Success(ctx, gin.H{"message": "password updated"})
}

// UpdateProfile allows the authenticated user to update display name and
// email.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := a.currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40005, "invalid request payload")
		return
	}

	if v := strings.TrimSpace(req.DisplayName); v != "" {
		display := utils.Sanitize(v)
		if rs := []rune(display); len(rs) > 150 {
			display = string(rs[:150])
		}
		user.DisplayName = display
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		user.Email = v
	}

	if err := a.db.Save(user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50007, "failed to update profile")
		return
	}

	utils.Success(ctx, user)
}

// currentUser loads the authenticated user or writes an error response.
// Shared by every controller in this package.
func (a *AuthController) currentUser(ctx *gin.Context) (*models.User, bool) {
	return loadCurrentUser(ctx, a.db)
}

func loadCurrentUser(ctx *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return nil, false
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return nil, false
	}
	return &user, true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func validUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// respondGameError maps game rule violations onto HTTP statuses.
func respondGameError(ctx *gin.Context, err error, code int) {
	switch {
	case err == nil:
		return
	case errors.Is(err, game.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, game.ErrAlreadyCompletedToday):
		utils.Error(ctx, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, game.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, code, err.Error())
	case errors.Is(err, game.ErrNotUnlocked):
		utils.Error(ctx, http.StatusForbidden, code, err.Error())
	case errors.Is(err, game.ErrPermissionDenied):
		utils.Error(ctx, http.StatusForbidden, code, err.Error())
	case errors.Is(err, game.ErrIntegrityConflict):
		utils.Error(ctx, http.StatusConflict, code, err.Error())
	default:
		utils.Error(ctx, http.StatusInternalServerError, code, "internal error")
	}
}
