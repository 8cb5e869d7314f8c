package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestLine is an ordered grouping of quests. QuestLineID is the natural key
// issued by the game client; sync upserts on it.
type QuestLine struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	QuestLineID string    `gorm:"uniqueIndex;not null" json:"questLineId"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	Order       int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Quests []Quest `gorm:"foreignKey:QuestLineID;references:QuestLineID" json:"quests,omitempty"`
}

func (q *QuestLine) BeforeCreate(_ *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
