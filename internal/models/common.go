package models

import (
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// DayFormat is the calendar-day layout used everywhere gating decisions
// are made. Gating compares these strings for equality, never timestamps.
const DayFormat = "2006-01-02"
