package application

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"jobboard/internal/blob"
	"jobboard/internal/domain/job"
)

const maxResumeSize = 5 << 20 // 5 MiB

// allowedResumeTypes keys are declared content types.
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Notifier delivers the new-application fan-out. Implemented by the
// notification service; failures are logged and never propagated.
type Notifier interface {
	NotifyNewApplication(ctx context.Context, recipientID, jobID, jobTitle, applicantID, applicantName string) error
}

// JobDirectory is what the tracker needs from the job side.
type JobDirectory interface {
	GetByID(ctx context.Context, jobID string) (*job.Job, error)
	IDsByEmployer(ctx context.Context, employerID string) ([]string, error)
	IncrementApplicants(ctx context.Context, jobID string) error
}

// Service owns the application lifecycle.
type Service struct {
	repo     Repository
	jobs     JobDirectory
	resumes  blob.Store
	notifier Notifier
}

func NewService(repo Repository, jobs JobDirectory, resumes blob.Store, notifier Notifier) *Service {
	return &Service{repo: repo, jobs: jobs, resumes: resumes, notifier: notifier}
}

// Submit files an application for the seeker. The résumé is validated before
// any upload, the insert is atomic on the (seeker, job) key, and the employer
// notification is a best-effort side effect that never fails the submission.
func (s *Service) Submit(ctx context.Context, seekerID, jobID string, form *Form, resume *Attachment) (*Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPublished {
		return nil, ErrJobUnavailable
	}

	if errs := validateForm(form, resume); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if !allowedResumeTypes[resume.ContentType] || len(resume.Data) > maxResumeSize {
		return nil, ErrInvalidAttachment
	}

	// Fail fast on a repeat application before touching blob storage
	if _, err := s.repo.GetBySeekerAndJob(ctx, seekerID, jobID); err == nil {
		return nil, ErrAlreadyApplied
	} else if err != ErrNotFound {
		return nil, err
	}

	now := time.Now()
	objectName := fmt.Sprintf("resumes/%s/%d_%s", seekerID, now.Unix(), resume.Filename)
	resumeURL, err := s.resumes.Put(ctx, objectName, resume.Data, resume.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	app := &Application{
		ID:           CompositeID(seekerID, jobID),
		JobID:        jobID,
		SeekerID:     seekerID,
		FullName:     strings.TrimSpace(form.FullName),
		Email:        strings.TrimSpace(form.Email),
		Phone:        strings.TrimSpace(form.Phone),
		CurrentRole:  form.CurrentRole,
		Experience:   form.Experience,
		Education:    form.Education,
		PortfolioURL: form.PortfolioURL,
		CoverLetter:  form.CoverLetter,
		ResumeURL:    resumeURL,
		ResumeName:   resume.Filename,
		JobTitle:     j.Title,
		Company:      j.Company,
		Status:       StatusPending,
		AppliedAt:    now,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.jobs.IncrementApplicants(ctx, jobID); err != nil {
		log.Printf("applicant_count_failed job_id=%s err=%v", jobID, err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewApplication(ctx, j.EmployerID, j.ID, j.Title, seekerID, app.FullName); err != nil {
			log.Printf("notify_failed type=new_application job_id=%s err=%v", jobID, err)
		}
	}

	return app, nil
}

func validateForm(f *Form, resume *Attachment) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	email := strings.TrimSpace(f.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailShape.MatchString(email) {
		errs["email"] = "Email must look like local@domain"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if resume == nil || len(resume.Data) == 0 {
		errs["resume"] = "Resume attachment is required"
	}
	return errs
}

// GetForSeekerAndJob answers "have I applied, and what is the status".
func (s *Service) GetForSeekerAndJob(ctx context.Context, seekerID, jobID string) (*Application, error) {
	return s.repo.GetBySeekerAndJob(ctx, seekerID, jobID)
}

func (s *Service) ListForSeeker(ctx context.Context, seekerID string) ([]*Application, error) {
	return s.repo.ListBySeeker(ctx, seekerID)
}

// ListForJob returns a job's applications for its owning employer.
func (s *Service) ListForJob(ctx context.Context, employerID, jobID string) ([]*Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, ErrNotJobOwner
	}
	return s.repo.ListByJob(ctx, jobID)
}

// ListForEmployer aggregates applications across all of the employer's jobs,
// newest first, with per-status counts for the review view.
func (s *Service) ListForEmployer(ctx context.Context, employerID string) ([]*Application, StatusCounts, error) {
	jobIDs, err := s.jobs.IDsByEmployer(ctx, employerID)
	if err != nil {
		return nil, StatusCounts{}, err
	}
	apps, err := s.repo.ListByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, StatusCounts{}, err
	}
	return apps, CountByStatus(apps), nil
}

// UpdateStatus moves an application to any status in the set; there are no
// forbidden transitions. Every call stamps the reviewed timestamp.
func (s *Service) UpdateStatus(ctx context.Context, employerID, applicationID string, status Status) (*Application, error) {
	if _, ok := ParseStatus(string(status)); !ok {
		return nil, ErrInvalidStatus
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, ErrNotJobOwner
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, applicationID, status, now); err != nil {
		return nil, err
	}
	app.Status = status
	app.ReviewedAt = &now
	return app, nil
}
