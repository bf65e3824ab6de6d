package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles posting business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and publishes a posting.
func (s *Service) Create(ctx context.Context, employerID string, form *Form) (*Job, error) {
	return s.create(ctx, employerID, form, StatusPublished)
}

// CreateDraft validates and stores a posting without publishing it.
func (s *Service) CreateDraft(ctx context.Context, employerID string, form *Form) (*Job, error) {
	return s.create(ctx, employerID, form, StatusDraft)
}

func (s *Service) create(ctx context.Context, employerID string, form *Form, status Status) (*Job, error) {
	if errs := ValidateForm(form, time.Now()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	deadline, _ := time.Parse("2006-01-02", form.Deadline)
	now := time.Now()
	j := &Job{
		ID:              uuid.NewString(),
		EmployerID:      employerID,
		Title:           strings.TrimSpace(form.Title),
		Company:         strings.TrimSpace(form.Company),
		Category:        form.Category,
		Type:            form.Type,
		Location:        strings.TrimSpace(form.Location),
		SalaryMin:       form.SalaryMin,
		SalaryMax:       form.SalaryMax,
		Description:     strings.TrimSpace(form.Description),
		Skills:          normalizeSkills(form.Skills),
		ExperienceLevel: form.ExperienceLevel,
		EducationLevel:  form.EducationLevel,
		WorkMode:        WorkMode(form.WorkMode),
		Deadline:        deadline,
		Openings:        form.Openings,
		Status:          status,
		ApplicantsCount: 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Update replaces a posting's editable fields. Only the owner may update;
// status and applicant count are not touched.
func (s *Service) Update(ctx context.Context, employerID, jobID string, form *Form) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, ErrNotOwner
	}

	if errs := ValidateForm(form, time.Now()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	deadline, _ := time.Parse("2006-01-02", form.Deadline)
	j.Title = strings.TrimSpace(form.Title)
	j.Company = strings.TrimSpace(form.Company)
	j.Category = form.Category
	j.Type = form.Type
	j.Location = strings.TrimSpace(form.Location)
	j.SalaryMin = form.SalaryMin
	j.SalaryMax = form.SalaryMax
	j.Description = strings.TrimSpace(form.Description)
	j.Skills = normalizeSkills(form.Skills)
	j.ExperienceLevel = form.ExperienceLevel
	j.EducationLevel = form.EducationLevel
	j.WorkMode = WorkMode(form.WorkMode)
	j.Deadline = deadline
	j.Openings = form.Openings
	j.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Publish promotes a draft. Publishing a published job is a no-op.
func (s *Service) Publish(ctx context.Context, employerID, jobID string) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, ErrNotOwner
	}
	if j.Status == StatusPublished {
		return j, nil
	}
	j.Status = StatusPublished
	j.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) Delete(ctx context.Context, employerID, jobID string) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.EmployerID != employerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, jobID)
}

func (s *Service) GetByID(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) ListByEmployer(ctx context.Context, employerID string) ([]*Job, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

// ListPublished returns published postings newest first, narrowed by the
// filter. Drafts never appear here.
func (s *Service) ListPublished(ctx context.Context, filter Filter) ([]*Job, error) {
	jobs, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Query == "" && filter.Location == "" {
		return jobs, nil
	}

	out := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		if MatchesFilter(j, filter) {
			out = append(out, j)
		}
	}
	return out, nil
}

// IDsByEmployer and IncrementApplicants serve the application tracker.

func (s *Service) IDsByEmployer(ctx context.Context, employerID string) ([]string, error) {
	return s.repo.IDsByEmployer(ctx, employerID)
}

func (s *Service) IncrementApplicants(ctx context.Context, jobID string) error {
	return s.repo.IncrementApplicants(ctx, jobID)
}
