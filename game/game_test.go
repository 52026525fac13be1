package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ziyuew/habitquest/config"
	"github.com/ziyuew/habitquest/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Equipment{},
		&models.UserEquipment{},
		&models.DailyCheckIn{},
		&models.TowerProgress{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	// Reload so column defaults (level, hp, attribute levels) are populated.
	require.NoError(t, db.First(user, user.ID).Error)
	return user
}
