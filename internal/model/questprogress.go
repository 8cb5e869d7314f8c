package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestProgress is one player's completion state for one quest. Exactly one
// row exists per (user, quest) pair; sync upserts on that composite key.
// QuestName and QuestLine are denormalized so the dashboard can render
// progress without joining quest definitions.
type QuestProgress struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"not null;uniqueIndex:idx_user_quest" json:"userId"`
	QuestID     string     `gorm:"not null;uniqueIndex:idx_user_quest" json:"questId"`
	QuestName   string     `gorm:"not null" json:"questName"`
	QuestLine   *string    `json:"questLine,omitempty"`
	// No DB defaults on the flags: gorm omits zero-valued columns that have
	// one, which would turn an explicit unlocked=false into the default on
	// first insert. The API-level defaults live in the sync handler.
	Completed   bool       `gorm:"not null" json:"completed"`
	Unlocked    bool       `gorm:"not null" json:"unlocked"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Quest *Quest `gorm:"foreignKey:QuestID;references:QuestID" json:"quest,omitempty"`
}

func (QuestProgress) TableName() string {
	return "quest_progress"
}

func (p *QuestProgress) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
