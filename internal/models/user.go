package models

import "time"

// User is a mini-program account keyed by the WeChat open-id. Password
// auth exists only for the seeded admin account.
type User struct {
	BaseModel
	OpenID       string     `gorm:"uniqueIndex;size:64" json:"openId"`
	Nickname     string     `gorm:"size:64" json:"nickname"`
	AvatarURL    string     `json:"avatarUrl"`
	City         string     `gorm:"size:64" json:"city"`
	Phone        string     `gorm:"size:20" json:"phone"`
	PasswordHash string     `gorm:"size:128" json:"-"`
	Role         UserRole   `gorm:"size:16;default:user" json:"role"`
	Status       UserStatus `gorm:"size:16;default:active" json:"status"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
}
