package models

import (
	"time"

	"gorm.io/gorm"
)

// AIChatMessage is one chat turn (user input + assistant output), kept per owner.
type AIChatMessage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedBy string         `json:"created_by" gorm:"size:100;index;not null"`
	UserText  string         `json:"user_text" gorm:"type:text;not null"`
	AIText    string         `json:"ai_text" gorm:"type:longtext;not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (AIChatMessage) TableName() string {
	return "ai_chat_messages"
}
