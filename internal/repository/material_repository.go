package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"questboard/internal/model"
)

type MaterialRepository struct {
	db *gorm.DB
}

type MaterialRepositoryInterface interface {
	Create(ctx context.Context, material *model.Material) error
	GetByID(ctx context.Context, id string) (*model.Material, error)
	GetByTask(ctx context.Context, taskID string) ([]model.Material, error)
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

var _ MaterialRepositoryInterface = (*MaterialRepository)(nil)

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create adds a material to a task's checklist
func (r *MaterialRepository) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// GetByID retrieves a material by its ID
func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*model.Material, error) {
	var material model.Material
	result := r.db.WithContext(ctx).First(&material, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, result.Error
	}
	return &material, nil
}

// GetByTask retrieves all materials of a task, oldest first
func (r *MaterialRepository) GetByTask(ctx context.Context, taskID string) ([]model.Material, error) {
	var materials []model.Material
	result := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&materials)
	if result.Error != nil {
		return nil, result.Error
	}
	return materials, nil
}

// UpdateFields writes only the supplied columns
func (r *MaterialRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

// Delete removes a material by its ID
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Material{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
