package models

import "time"

// DailyCheckIn records one daily check-in. CheckinDate is the calendar-day
// key; the unique index makes a second check-in on the same day fail at the
// storage layer as well as in the handler.
type DailyCheckIn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_user_checkin_day,unique;not null" json:"user_id"`
	CheckinDate string    `gorm:"index:idx_user_checkin_day,unique;size:10;not null" json:"checkin_date"`
	XPEarned    int       `json:"xp_earned"`
	CreatedAt   time.Time `json:"created_at"`
}
