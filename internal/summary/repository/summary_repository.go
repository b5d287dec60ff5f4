package repository

import (
	"context"
	"errors"
	"time"

	"meeting-notes-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// summaryRepository implements SummaryRepository on top of gorm
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new instance of summaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Create(ctx context.Context, summary *domain.Summary) error {
	summary.ID = uuid.New().String()
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *summaryRepository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	var summary domain.Summary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Summary, error) {
	var summaries []*domain.Summary
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *summaryRepository) UpdateSummary(ctx context.Context, id, summary string, updatedAt time.Time) (*domain.Summary, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Summary{}).
		Where("id = ?", id).
		Updates(map[string]any{"summary": summary, "updated_at": updatedAt})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *summaryRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Summary{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
