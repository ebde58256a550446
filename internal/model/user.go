package model

import (
	"time"
)

// User mirrors an identity issued by the external provider. ID is the provider's
// opaque subject, not something we generate.
type User struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
