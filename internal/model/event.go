package model

import "time"

// Event is a single listed happening: what, where and for which date range.
// StartDate and EndDate are calendar dates normalized to midnight UTC.
type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string
	Location    string    `gorm:"size:100;not null"`
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time `gorm:"not null;index"`
	CategoryID  uint      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
