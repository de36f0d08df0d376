package dto

// --- Job Requests ---

type CreateJobRequest struct {
	PublisherID   string   `json:"publisherId" validate:"-"` // set by the server
	Title         string   `json:"title" validate:"required,min=2,max=100"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	Company       string   `json:"company" validate:"required,max=100"`
	City          string   `json:"city" validate:"required,max=50"`
	District      string   `json:"district" validate:"omitempty,max=50"`
	Category      string   `json:"category" validate:"omitempty,max=50"`
	SalaryMin     float64  `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax     float64  `json:"salaryMax" validate:"omitempty,min=0,gtefield=SalaryMin"`
	SalaryUnit    string   `json:"salaryUnit" validate:"omitempty,oneof=month day hour"`
	Tags          []string `json:"tags" validate:"omitempty,max=10"`
	Benefits      []string `json:"benefits" validate:"omitempty,max=10"`
	Contact       string   `json:"contact" validate:"required,max=30"`
	ContactPerson string   `json:"contactPerson" validate:"required,max=50"`
	ContactTime   string   `json:"contactTime" validate:"omitempty,max=50"`
}

type SearchJobsRequest struct {
	City       string `form:"city" validate:"omitempty,max=50"`
	Category   string `form:"category" validate:"omitempty,max=50"`
	Keyword    string `form:"keyword" validate:"omitempty,max=50"`
	PublishDay string `form:"publishDay" validate:"omitempty,is-day"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`
}

// --- Job Responses ---

// JobSummary is the listing-page shape; contact fields never appear here.
type JobSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	City       string   `json:"city"`
	District   string   `json:"district,omitempty"`
	Category   string   `json:"category,omitempty"`
	SalaryMin  float64  `json:"salaryMin"`
	SalaryMax  float64  `json:"salaryMax"`
	SalaryUnit string   `json:"salaryUnit,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	PublishDay string   `json:"publishDay"`
	Views      int      `json:"views"`
}

// JobDetail is the detail-page shape. Contact, ContactPerson and
// ContactTime carry masked values until IsUnlocked is true; they are
// masked, never omitted, because the UI renders the preview.
type JobDetail struct {
	JobSummary
	Description       string   `json:"description"`
	Benefits          []string `json:"benefits,omitempty"`
	Contact           string   `json:"contact"`
	ContactPerson     string   `json:"contactPerson"`
	ContactTime       string   `json:"contactTime,omitempty"`
	PublisherID       string   `json:"publisherId"`
	IsToday           bool     `json:"isToday"`
	IsUnlocked        bool     `json:"isUnlocked"`
	NeedShareToUnlock bool     `json:"needShareToUnlock"`
}
