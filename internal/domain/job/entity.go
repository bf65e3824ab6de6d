package job

import "time"

// Status of a posting. Drafts are only visible to their employer.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// WorkMode is where the work happens.
type WorkMode string

const (
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeRemote WorkMode = "remote"
)

// Job is a posting owned by one employer. Ownership never transfers.
type Job struct {
	ID              string    `gorm:"column:id;primaryKey" json:"id"`
	EmployerID      string    `gorm:"column:employer_id;index" json:"employer_id"`
	Title           string    `gorm:"column:title" json:"title"`
	Company         string    `gorm:"column:company" json:"company"`
	Category        string    `gorm:"column:category" json:"category"`
	Type            string    `gorm:"column:type" json:"type"`
	Location        string    `gorm:"column:location" json:"location"`
	SalaryMin       *int      `gorm:"column:salary_min" json:"salary_min,omitempty"`
	SalaryMax       *int      `gorm:"column:salary_max" json:"salary_max,omitempty"`
	Description     string    `gorm:"column:description" json:"description"`
	Skills          []string  `gorm:"column:skills;serializer:json" json:"skills"`
	ExperienceLevel string    `gorm:"column:experience_level" json:"experience_level"`
	EducationLevel  string    `gorm:"column:education_level" json:"education_level,omitempty"`
	WorkMode        WorkMode  `gorm:"column:work_mode" json:"work_mode"`
	Deadline        time.Time `gorm:"column:deadline" json:"deadline"`
	Openings        int       `gorm:"column:openings" json:"openings"`
	Status          Status    `gorm:"column:status;index" json:"status"`
	ApplicantsCount int       `gorm:"column:applicants_count" json:"applicants_count"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// Form carries employer input for create and update.
type Form struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Location        string   `json:"location"`
	SalaryMin       *int     `json:"salary_min"`
	SalaryMax       *int     `json:"salary_max"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
	EducationLevel  string   `json:"education_level"`
	WorkMode        string   `json:"work_mode"`
	Deadline        string   `json:"deadline"` // YYYY-MM-DD
	Openings        int      `json:"openings"`
}

// Filter narrows the published listing. Both predicates are conjunctive
// case-insensitive substring matches.
type Filter struct {
	Query    string
	Location string
}
