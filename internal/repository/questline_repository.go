package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questboard/internal/model"
)

type QuestLineRepository struct {
	db *gorm.DB
}

type QuestLineRepositoryInterface interface {
	Upsert(ctx context.Context, line *model.QuestLine, supplied map[string]interface{}) (*model.QuestLine, error)
	GetAll(ctx context.Context) ([]model.QuestLine, error)
	GetByID(ctx context.Context, id string) (*model.QuestLine, error)
	GetWithProgress(ctx context.Context, userID string) ([]model.QuestLine, error)
}

var _ QuestLineRepositoryInterface = (*QuestLineRepository)(nil)

func NewQuestLineRepository(db *gorm.DB) *QuestLineRepository {
	return &QuestLineRepository{db: db}
}

// Upsert creates or updates the quest line keyed on its natural QuestLineID.
// Name and order are always overwritten; supplied holds assignments for
// optional columns the sync event actually carried, so omitting the
// description leaves a previously stored one in place.
func (r *QuestLineRepository) Upsert(ctx context.Context, line *model.QuestLine, supplied map[string]interface{}) (*model.QuestLine, error) {
	assignments := map[string]interface{}{
		"name":       line.Name,
		"order":      line.Order,
		"updated_at": time.Now(),
	}
	for column, value := range supplied {
		assignments[column] = value
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "quest_line_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(line).Error
	if err != nil {
		return nil, err
	}

	var out model.QuestLine
	if err := r.db.WithContext(ctx).First(&out, "quest_line_id = ?", line.QuestLineID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAll retrieves every quest line ordered by display order, with quests
// and all players' progress joined
func (r *QuestLineRepository) GetAll(ctx context.Context) ([]model.QuestLine, error) {
	var lines []model.QuestLine
	result := r.db.WithContext(ctx).
		Preload("Quests.Progress").
		Order(`"order" ASC`).
		Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}

// GetByID retrieves one quest line by row id with quests and all players'
// progress joined
func (r *QuestLineRepository) GetByID(ctx context.Context, id string) (*model.QuestLine, error) {
	var line model.QuestLine
	result := r.db.WithContext(ctx).
		Preload("Quests.Progress").
		First(&line, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrQuestLineNotFound
		}
		return nil, result.Error
	}
	return &line, nil
}

// GetWithProgress retrieves every quest line ordered by display order, each
// quest carrying only the given user's progress rows. The quest graph is
// shared; the progress filter is what personalizes it.
func (r *QuestLineRepository) GetWithProgress(ctx context.Context, userID string) ([]model.QuestLine, error) {
	var lines []model.QuestLine
	result := r.db.WithContext(ctx).
		Preload("Quests.Progress", "user_id = ?", userID).
		Order(`"order" ASC`).
		Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}
