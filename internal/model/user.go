package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved identity used by the Minecraft-side mod when an event has no
// player attached.
const (
	SystemUserID   = "system"
	SystemUserUUID = "00000000-0000-0000-0000-000000000000"
	SystemUsername = "System"
)

type User struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	MinecraftUUID string    `gorm:"uniqueIndex;not null" json:"minecraftUUID"`
	Username      string    `gorm:"not null" json:"username"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Tasks         []Task          `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"tasks,omitempty"`
	QuestProgress []QuestProgress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"questProgress,omitempty"`
}

// BeforeCreate fills the primary key when the caller did not supply one.
// Sync events from the game client carry their own user ids.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
