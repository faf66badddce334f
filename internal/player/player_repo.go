package player

import (
	"gorm.io/gorm"
)

type PlayerRepository interface {
	ListPlayers() ([]Player, error)
	CreatePlayer(p *Player) error
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) ListPlayers() ([]Player, error) {
	var players []Player
	if err := r.db.Order("name").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) CreatePlayer(p *Player) error {
	return r.db.Create(p).Error
}
