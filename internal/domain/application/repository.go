package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxIDsPerQuery caps IN-style batch queries; larger id sets are chunked.
const maxIDsPerQuery = 30

// Repository handles all DB operations for applications.
type Repository interface {
	// Create inserts the application iff its composite key is free.
	// Returns ErrAlreadyApplied when the key already exists.
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetBySeekerAndJob(ctx context.Context, seekerID, jobID string) (*Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*Application, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]*Application, error)
	ListByJobIDs(ctx context.Context, jobIDs []string) ([]*Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, reviewedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	// Conditional insert keyed on the composite primary key. Two racing
	// submits cannot both succeed: the loser's insert affects zero rows.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyApplied
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Application, error) {
	var a Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *repository) GetBySeekerAndJob(ctx context.Context, seekerID, jobID string) (*Application, error) {
	// Direct key lookup, not a scan
	return r.GetByID(ctx, CompositeID(seekerID, jobID))
}

func (r *repository) ListByJob(ctx context.Context, jobID string) ([]*Application, error) {
	var apps []*Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at DESC, id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) ListBySeeker(ctx context.Context, seekerID string) ([]*Application, error) {
	var apps []*Application
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("applied_at DESC, id ASC").
		Find(&apps).Error
	return apps, err
}

// ListByJobIDs fetches applications for an arbitrary number of jobs. The id
// list is chunked to maxIDsPerQuery, the chunk queries run concurrently, and
// the merged result is sorted by applied time descending.
func (r *repository) ListByJobIDs(ctx context.Context, jobIDs []string) ([]*Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	chunks := chunkIDs(jobIDs, maxIDsPerQuery)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		merged   []*Application
		firstErr error
	)
	for _, chunk := range chunks {
		wg.Add(1)
		go func(ids []string) {
			defer wg.Done()
			var apps []*Application
			err := r.db.WithContext(ctx).
				Where("job_id IN ?", ids).
				Find(&apps).Error
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			merged = append(merged, apps...)
		}(chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].AppliedAt.Equal(merged[j].AppliedAt) {
			return merged[i].AppliedAt.After(merged[j].AppliedAt)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}
