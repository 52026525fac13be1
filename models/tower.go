package models

import "time"

// TowerProgress tracks a user's position in the tower mini-game. The current
// floor advances by exactly one per completed floor; the highest floor never
// decreases.
type TowerProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentFloor int       `gorm:"default:1" json:"current_floor"`
	HighestFloor int       `gorm:"default:1" json:"highest_floor"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
