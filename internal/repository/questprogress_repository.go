package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questboard/internal/model"
)

type QuestProgressRepository struct {
	db *gorm.DB
}

type QuestProgressRepositoryInterface interface {
	Upsert(ctx context.Context, progress *model.QuestProgress, supplied map[string]interface{}) (*model.QuestProgress, error)
	CountCompleted(ctx context.Context, userID string) (int64, error)
	CountUnlocked(ctx context.Context, userID string) (int64, error)
	GetByUser(ctx context.Context, userID string) ([]model.QuestProgress, error)
}

var _ QuestProgressRepositoryInterface = (*QuestProgressRepository)(nil)

func NewQuestProgressRepository(db *gorm.DB) *QuestProgressRepository {
	return &QuestProgressRepository{db: db}
}

// Upsert creates or updates the progress row keyed on (user_id, quest_id).
// Re-delivery of the same fact lands on the same row; no duplicates. supplied
// holds assignments for optional columns the payload actually carried; a
// column absent from it keeps its stored value across re-syncs.
func (r *QuestProgressRepository) Upsert(ctx context.Context, progress *model.QuestProgress, supplied map[string]interface{}) (*model.QuestProgress, error) {
	assignments := map[string]interface{}{
		"quest_name":   progress.QuestName,
		"completed":    progress.Completed,
		"unlocked":     progress.Unlocked,
		"completed_at": progress.CompletedAt,
		"updated_at":   time.Now(),
	}
	for column, value := range supplied {
		assignments[column] = value
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	var out model.QuestProgress
	if err := r.db.WithContext(ctx).
		First(&out, "user_id = ? AND quest_id = ?", progress.UserID, progress.QuestID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// CountCompleted returns how many quests the user has completed
func (r *QuestProgressRepository) CountCompleted(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuestProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CountUnlocked returns how many quests the user has unlocked but not yet
// completed
func (r *QuestProgressRepository) CountUnlocked(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuestProgress{}).
		Where("user_id = ? AND unlocked = ? AND completed = ?", userID, true, false).
		Count(&count).Error
	return count, err
}

// GetByUser retrieves all progress rows of one user with quest and line joined
func (r *QuestProgressRepository) GetByUser(ctx context.Context, userID string) ([]model.QuestProgress, error) {
	var rows []model.QuestProgress
	result := r.db.WithContext(ctx).
		Preload("Quest.QuestLine").
		Where("user_id = ?", userID).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
