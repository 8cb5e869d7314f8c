package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questboard/internal/model"
)

type QuestRepository struct {
	db *gorm.DB
}

type QuestRepositoryInterface interface {
	Upsert(ctx context.Context, quest *model.Quest, supplied map[string]interface{}) (*model.Quest, error)
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]model.Quest, error)
	GetByQuestID(ctx context.Context, questID string) (*model.Quest, error)
	GetByLine(ctx context.Context, questLineID string) ([]model.Quest, error)
}

var _ QuestRepositoryInterface = (*QuestRepository)(nil)

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

// Upsert creates or updates the quest keyed on its natural QuestID. supplied
// holds assignments for the optional metadata columns the sync payload
// actually carried; a column absent from it keeps its stored value, so an
// opportunistic event without metadata never erases an earlier full sync.
// quest_line_id is absent from the update set entirely: a quest joins a line
// on creation and never moves afterwards, even if later sync events carry a
// different line.
func (r *QuestRepository) Upsert(ctx context.Context, quest *model.Quest, supplied map[string]interface{}) (*model.Quest, error) {
	assignments := map[string]interface{}{
		"name":          quest.Name,
		"task_logic":    quest.TaskLogic,
		"prerequisites": quest.Prerequisites,
		"updated_at":    time.Now(),
	}
	for column, value := range supplied {
		assignments[column] = value
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "quest_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(quest).Error
	if err != nil {
		return nil, err
	}

	var out model.Quest
	if err := r.db.WithContext(ctx).First(&out, "quest_id = ?", quest.QuestID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Count returns the number of quest definitions (global, not per user)
func (r *QuestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Quest{}).Count(&count).Error
	return count, err
}

// GetAll retrieves every quest with its line and all players' progress
func (r *QuestRepository) GetAll(ctx context.Context) ([]model.Quest, error) {
	var quests []model.Quest
	result := r.db.WithContext(ctx).
		Preload("QuestLine").
		Preload("Progress").
		Find(&quests)
	if result.Error != nil {
		return nil, result.Error
	}
	return quests, nil
}

// GetByQuestID retrieves a quest by its natural key
func (r *QuestRepository) GetByQuestID(ctx context.Context, questID string) (*model.Quest, error) {
	var quest model.Quest
	result := r.db.WithContext(ctx).
		Preload("QuestLine").
		Preload("Progress").
		First(&quest, "quest_id = ?", questID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, result.Error
	}
	return &quest, nil
}

// GetByLine retrieves the quests of one quest line by its natural key
func (r *QuestRepository) GetByLine(ctx context.Context, questLineID string) ([]model.Quest, error) {
	var quests []model.Quest
	result := r.db.WithContext(ctx).
		Preload("QuestLine").
		Preload("Progress").
		Where("quest_line_id = ?", questLineID).
		Find(&quests)
	if result.Error != nil {
		return nil, result.Error
	}
	return quests, nil
}
