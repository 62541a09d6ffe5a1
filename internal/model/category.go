package model

import "time"

// Category is a fixed classification bucket for events (festival, pop-up
// store, ...). The set of categories is seeded at bootstrap and never
// changed by request handlers.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Events    []Event `gorm:"foreignKey:CategoryID"`
}
