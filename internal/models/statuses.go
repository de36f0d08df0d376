package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

type ShareType string

const (
	ShareTypeWechat   ShareType = "wechat"
	ShareTypeTimeline ShareType = "timeline"
	ShareTypePoster   ShareType = "poster"
	ShareTypeLink     ShareType = "link"
)

// ValidShareTypes is consulted by the custom validator rule.
var ValidShareTypes = []ShareType{
	ShareTypeWechat, ShareTypeTimeline, ShareTypePoster, ShareTypeLink,
}

// ValidJobStatuses is consulted by the custom validator rule.
var ValidJobStatuses = []JobStatus{JobStatusActive, JobStatusClosed}
