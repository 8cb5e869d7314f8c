package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. No workflow is enforced; any status may be written over any
// other.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusBlocked    = "BLOCKED"
)

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Task is a shared team task. There is no per-user copy; everyone sees and
// edits the same row.
type Task struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  *string    `json:"description,omitempty"`
	Status       string     `gorm:"not null;default:TODO" json:"status"`
	Priority     string     `gorm:"not null;default:MEDIUM" json:"priority"`
	AssignedToID *string    `gorm:"index" json:"assignedToId,omitempty"`
	QuestID      *string    `json:"questId,omitempty"`
	QuestName    *string    `json:"questName,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	AssignedTo *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Materials  []Material `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"materials,omitempty"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
