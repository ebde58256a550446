package model

import (
	"time"

	"github.com/google/uuid"
)

// Board is the root of an ownership chain. Lists hang off it, cards hang off lists.
type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OwnerID   string    `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
