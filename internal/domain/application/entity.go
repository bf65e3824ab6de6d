package application

import "time"

// Status of an application. Transitions are unconstrained: the employer may
// move between any two states, which allows manual correction.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}

// CompositeID is the deterministic application key. One application per
// (seeker, job) is enforced by this being the primary key.
func CompositeID(seekerID, jobID string) string {
	return seekerID + "_" + jobID
}

// Application is a seeker's submission against one job. The applicant-entered
// fields are a snapshot taken at submit time and never change afterwards;
// only the owning employer mutates the status.
type Application struct {
	ID       string `gorm:"column:id;primaryKey" json:"id"`
	JobID    string `gorm:"column:job_id;index" json:"job_id"`
	SeekerID string `gorm:"column:seeker_id;index" json:"seeker_id"`

	FullName     string `gorm:"column:full_name" json:"full_name"`
	Email        string `gorm:"column:email" json:"email"`
	Phone        string `gorm:"column:phone" json:"phone"`
	CurrentRole  string `gorm:"column:current_role" json:"current_role,omitempty"`
	Experience   string `gorm:"column:experience" json:"experience,omitempty"`
	Education    string `gorm:"column:education" json:"education,omitempty"`
	PortfolioURL string `gorm:"column:portfolio_url" json:"portfolio_url,omitempty"`
	CoverLetter  string `gorm:"column:cover_letter" json:"cover_letter,omitempty"`

	ResumeURL  string `gorm:"column:resume_url" json:"resume_url"`
	ResumeName string `gorm:"column:resume_name" json:"resume_name"`

	// Denormalized for list views; may go stale if the job is edited later.
	JobTitle string `gorm:"column:job_title" json:"job_title"`
	Company  string `gorm:"column:company" json:"company"`

	Status     Status     `gorm:"column:status;index" json:"status"`
	AppliedAt  time.Time  `gorm:"column:applied_at" json:"applied_at"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
}

func (Application) TableName() string { return "applications" }

// Form carries the seeker's input.
type Form struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CurrentRole  string `json:"current_role"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	PortfolioURL string `json:"portfolio_url"`
	CoverLetter  string `json:"cover_letter"`
}

// Attachment is the declared résumé file.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StatusCounts aggregates applications per status for the review view.
type StatusCounts struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Reviewed    int `json:"reviewed"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
}

func CountByStatus(apps []*Application) StatusCounts {
	counts := StatusCounts{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case StatusPending:
			counts.Pending++
		case StatusReviewed:
			counts.Reviewed++
		case StatusShortlisted:
			counts.Shortlisted++
		case StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}
