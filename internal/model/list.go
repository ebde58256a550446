package model

import (
	"time"

	"github.com/google/uuid"
)

type List struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index:idx_lists_board_position" json:"board_id"`
	Position  int       `gorm:"not null;index:idx_lists_board_position" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
