package model

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	ListID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cards_list_position" json:"list_id"`
	Position  int       `gorm:"not null;index:idx_cards_list_position" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
