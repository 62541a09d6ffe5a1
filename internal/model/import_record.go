package model

import "time"

// ImportRecord marks an external dataset as already loaded so that a later
// bootstrap pass does not import the same data twice.
type ImportRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Dataset   string `gorm:"uniqueIndex;size:100;not null"`
	RunID     string `gorm:"size:36"`
	Inserted  int
	CreatedAt time.Time
}
