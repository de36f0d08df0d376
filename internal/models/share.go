package models

// ShareRecord is one durable "user U unlocked day D" fact. Unlocking is
// scoped to the publish day, not to a single job: one record opens every
// job published on UnlockDay for that user. JobID only remembers which
// listing triggered the share, for audit.
//
// The composite unique index is what makes RecordUnlock idempotent and
// race-free: concurrent writers for the same (user_id, unlock_day) pair
// collapse into a single row at the storage layer.
type ShareRecord struct {
	BaseModel
	UserID       string    `gorm:"type:uuid;uniqueIndex:idx_user_unlock_day" json:"userId"`
	UnlockDay    string    `gorm:"size:10;uniqueIndex:idx_user_unlock_day" json:"unlockDay"`
	JobID        string    `gorm:"type:uuid" json:"jobId"`
	ShareType    ShareType `gorm:"size:16" json:"shareType"`
	ShareChannel *string   `gorm:"size:64" json:"shareChannel,omitempty"`
}
