package player

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a scorecard participant. Players are independent of user
// accounts: anyone on a flight gets a row, keyed by display name.
type Player struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreatePlayerRequest struct {
	Name  string `json:"name" binding:"required" example:"Budi Santoso"`
	Email string `json:"email" binding:"omitempty,email" example:"budi@example.com"`
}
