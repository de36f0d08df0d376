package models

import (
	"gorm.io/datatypes"
)

// Job is a published listing. Contact, ContactPerson and ContactTime are
// the gated fields: they are masked in responses until the visibility
// gate opens them for the requesting user.
type Job struct {
	BaseModel
	PublisherID   string         `gorm:"type:uuid;index" json:"publisherId"`
	Title         string         `gorm:"size:128" json:"title"`
	Description   string         `json:"description"`
	Company       string         `gorm:"size:128" json:"company"`
	City          string         `gorm:"size:64;index" json:"city"`
	District      string         `gorm:"size:64" json:"district"`
	Category      string         `gorm:"size:64;index" json:"category"`
	SalaryMin     float64        `json:"salaryMin"`
	SalaryMax     float64        `json:"salaryMax"`
	SalaryUnit    string         `gorm:"size:16" json:"salaryUnit"` // month, day, hour
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Benefits      datatypes.JSON `gorm:"type:jsonb" json:"benefits"`
	Contact       string         `gorm:"size:32" json:"contact"`
	ContactPerson string         `gorm:"size:64" json:"contactPerson"`
	ContactTime   string         `gorm:"size:64" json:"contactTime"`
	// PublishDay is the calendar day (YYYY-MM-DD) the job went live.
	// Immutable after creation; the unit of unlock granularity.
	PublishDay string    `gorm:"size:10;index" json:"publishDay"`
	Status     JobStatus `gorm:"size:16;default:active;index" json:"status"`
	Views      int       `json:"views"`
}

// ItemID implements services.GatedItem.
func (j *Job) ItemID() string { return j.ID }

// ItemPublishDay implements services.GatedItem.
func (j *Job) ItemPublishDay() string { return j.PublishDay }
