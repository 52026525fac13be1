package models

import (
	"time"

	"gorm.io/gorm"
)

// Attribute identifies one of the five character attributes a habit can train.
type Attribute string

const (
	AttrStrength     Attribute = "strength"
	AttrIntelligence Attribute = "intelligence"
	AttrCreativity   Attribute = "creativity"
	AttrSocial       Attribute = "social"
	AttrHealth       Attribute = "health"
)

// Attributes lists every attribute in canonical order.
var Attributes = []Attribute{AttrStrength, AttrIntelligence, AttrCreativity, AttrSocial, AttrHealth}

// ValidAttribute reports whether s names a known attribute.
func ValidAttribute(s string) bool {
	for _, a := range Attributes {
		if string(a) == s {
			return true
		}
	}
	return false
}

// User represents a player. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	DisplayName  string `gorm:"size:150" json:"display_name"`
	Email        string `gorm:"size:255" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`

	Level       int `gorm:"default:1" json:"level"`
	CurrentXP   int `gorm:"default:0" json:"current_xp"`
	NextLevelXP int `gorm:"default:100" json:"next_level_xp"`
	MaxHP       int `gorm:"default:100" json:"max_hp"`
	CurrentHP   int `gorm:"default:100" json:"current_hp"`

	Strength       int `gorm:"default:1" json:"strength"`
	Intelligence   int `gorm:"default:1" json:"intelligence"`
	Creativity     int `gorm:"default:1" json:"creativity"`
	Social         int `gorm:"default:1" json:"social"`
	Health         int `gorm:"default:1" json:"health"`
	StrengthXP     int `gorm:"default:0" json:"strength_xp"`
	IntelligenceXP int `gorm:"default:0" json:"intelligence_xp"`
	CreativityXP   int `gorm:"default:0" json:"creativity_xp"`
	SocialXP       int `gorm:"default:0" json:"social_xp"`
	HealthXP       int `gorm:"default:0" json:"health_xp"`

	SelectedCharacter string `gorm:"size:32;default:'default'" json:"selected_character"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttrState exposes the level and XP counters backing one attribute.
// The pointers address the User's own fields, so writes through them persist
// with the next Save.
type AttrState struct {
	Level *int
	XP    *int
}

// Attr returns the storage fields for the named attribute, or ok=false for an
// unknown attribute.
func (u *User) Attr(a Attribute) (AttrState, bool) {
	switch a {
	case AttrStrength:
		return AttrState{&u.Strength, &u.StrengthXP}, true
	case AttrIntelligence:
		return AttrState{&u.Intelligence, &u.IntelligenceXP}, true
	case AttrCreativity:
		return AttrState{&u.Creativity, &u.CreativityXP}, true
	case AttrSocial:
		return AttrState{&u.Social, &u.SocialXP}, true
	case AttrHealth:
		return AttrState{&u.Health, &u.HealthXP}, true
	default:
		return AttrState{}, false
	}
}

// AttributeLevel returns the level of the named attribute, 0 for unknown.
func (u *User) AttributeLevel(a Attribute) int {
	st, ok := u.Attr(a)
	if !ok {
		return 0
	}
	return *st.Level
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
