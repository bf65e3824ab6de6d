package job

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles all DB operations for postings.
type Repository interface {
	Create(ctx context.Context, j *Job) error
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*Job, error)
	ListPublished(ctx context.Context) ([]*Job, error)
	IDsByEmployer(ctx context.Context, employerID string) ([]string, error)
	IncrementApplicants(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Job{}).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &j, err
}

func (r *repository) ListByEmployer(ctx context.Context, employerID string) ([]*Job, error) {
	var jobs []*Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC, id ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) ListPublished(ctx context.Context) ([]*Job, error) {
	var jobs []*Job
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPublished).
		Order("created_at DESC, id ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) IDsByEmployer(ctx context.Context, employerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Job{}).
		Where("employer_id = ?", employerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) IncrementApplicants(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Job{}).
		Where("id = ?", id).
		Update("applicants_count", gorm.Expr("applicants_count + 1")).Error
}
