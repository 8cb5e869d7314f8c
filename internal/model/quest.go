package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quest is the global, shared definition of one objective, upserted on its
// natural QuestID. Per-player state lives in QuestProgress.
type Quest struct {
	ID            string                      `gorm:"primaryKey" json:"id"`
	QuestID       string                      `gorm:"uniqueIndex;not null" json:"questId"`
	Name          string                      `gorm:"not null" json:"name"`
	Description   *string                     `json:"description,omitempty"`
	QuestLineID   *string                     `gorm:"index" json:"questLineId,omitempty"`
	TaskLogic     string                      `gorm:"not null;default:AND" json:"taskLogic"`
	Tasks         datatypes.JSON              `gorm:"type:jsonb" json:"tasks,omitempty"`
	Rewards       datatypes.JSON              `gorm:"type:jsonb" json:"rewards,omitempty"`
	Prerequisites datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"prerequisites"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`

	QuestLine *QuestLine      `gorm:"foreignKey:QuestLineID;references:QuestLineID" json:"questLine,omitempty"`
	Progress  []QuestProgress `gorm:"foreignKey:QuestID;references:QuestID" json:"progress,omitempty"`
}

func (q *Quest) BeforeCreate(_ *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
