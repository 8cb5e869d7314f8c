package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is one line of a task's crafting checklist. Obtained may exceed
// Quantity; the data layer does not clamp it.
type Material struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TaskID    string    `gorm:"not null;index" json:"taskId"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Obtained  int       `gorm:"not null;default:0" json:"obtained"`
	Unit      *string   `json:"unit,omitempty"`
	ItemID    *string   `json:"itemId,omitempty"`
	NBTData   *string   `gorm:"column:nbt_data" json:"nbtData,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (m *Material) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
