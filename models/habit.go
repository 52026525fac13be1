package models

import "time"

// Habit frequencies.
const (
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
)

// ValidFrequency reports whether s is a supported habit frequency.
func ValidFrequency(s string) bool {
	return s == FreqDaily || s == FreqWeekly || s == FreqMonthly
}

// Habit is a recurring real-life task owned by one user. Deleting a habit
// only flips IsActive so completion history stays intact.
type Habit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:32;not null" json:"category"`
	Frequency   string    `gorm:"size:16;default:'daily'" json:"frequency"`
	Difficulty  int       `gorm:"default:5" json:"difficulty"`
	XPReward    int       `gorm:"default:50" json:"xp_reward"`
	Streak      int       `gorm:"default:0" json:"streak"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitCompletion records one completion of a habit on one calendar day.
// The composite unique index is the storage-level fence against two
// concurrent completions of the same habit on the same day.
type HabitCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HabitID     uint      `gorm:"index:idx_completion_day,unique;not null" json:"habit_id"`
	UserID      uint      `gorm:"index:idx_completion_day,unique;index;not null" json:"user_id"`
	CompletedOn string    `gorm:"index:idx_completion_day,unique;size:10;not null" json:"completed_on"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	XPEarned    int       `json:"xp_earned"`
	Notes       string    `gorm:"size:500" json:"notes"`
	Habit       Habit     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// DayKey formats t as the calendar-day key used by completions and check-ins.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
