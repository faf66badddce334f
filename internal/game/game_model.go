package game

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/models"
	"github.com/wpras/golfku/internal/scoring"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Game is one round played at a course. It is created when the flight
// tees off and completed when the scores are calculated and saved.
type Game struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  string    `gorm:"not null;index" json:"course_id"`
	HoleCount int       `gorm:"not null" json:"hole_count"`
	Status    string    `gorm:"type:VARCHAR(20);check:status IN ('in_progress','completed');default:'in_progress'" json:"status"`
	TotalPar  int       `json:"total_par"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GameResult is one player's final line on a completed game.
type GameResult struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
	GameID         string         `gorm:"not null;index" json:"game_id"`
	PlayerID       string         `gorm:"not null;index" json:"player_id"`
	Tee            string         `json:"tee"`
	HandicapIndex  float64        `json:"handicap_index"`
	CourseHandicap int            `json:"course_handicap"`
	GrossScore     int            `json:"gross_score"`
	NetScore       int            `json:"net_score"`
	VsPar          int            `json:"vs_par"`
	Rank           int            `json:"rank"`
	Scores         models.IntList `gorm:"type:jsonb" json:"scores"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (gr *GameResult) BeforeCreate(tx *gorm.DB) error {
	if gr.ID == "" {
		gr.ID = uuid.NewString()
	}
	return nil
}

// ScoreHistory is the denormalized append-only feed behind the history
// listing. One row per player per saved game.
type ScoreHistory struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	PlayerName  string         `gorm:"not null;index" json:"player_name"`
	PlayerEmail string         `json:"player_email"`
	CourseName  string         `gorm:"not null" json:"course_name"`
	Location    string         `json:"location"`
	HoleCount   int            `json:"hole_count"`
	GrossScore  int            `json:"gross_score"`
	NetScore    int            `json:"net_score"`
	VsPar       int            `json:"vs_par"`
	Scores      models.IntList `gorm:"type:jsonb" json:"scores"`
	PlayedAt    time.Time      `gorm:"autoCreateTime;index" json:"played_at"`
}

func (sh *ScoreHistory) BeforeCreate(tx *gorm.DB) error {
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}
	return nil
}

type CreateGameRequest struct {
	CourseID  string `json:"course_id" binding:"required" example:"pig"`
	HoleCount int    `json:"hole_count" binding:"omitempty,oneof=9 18" example:"18"`
}

type CalculateRequest struct {
	CourseID  string                `json:"course_id" binding:"required" example:"pig"`
	HoleCount int                   `json:"hole_count" binding:"omitempty,oneof=9 18" example:"18"`
	GameID    string                `json:"game_id,omitempty"`
	Players   []scoring.PlayerRound `json:"players" binding:"required"`
}

type CalculateResponse struct {
	Course          *course.Course          `json:"course"`
	HoleCount       int                     `json:"hole_count"`
	TotalPar        int                     `json:"total_par"`
	Results         []*scoring.PlayerResult `json:"results"`
	Recommendations []string                `json:"recommendations"`
	Date            string                  `json:"date"`
}

// ScorecardRequest carries an already-computed result set back for PDF
// rendering or email delivery.
type ScorecardRequest struct {
	Course          *course.Course          `json:"course" binding:"required"`
	HoleCount       int                     `json:"hole_count" binding:"omitempty,oneof=9 18"`
	Results         []*scoring.PlayerResult `json:"results" binding:"required"`
	Recommendations []string                `json:"recommendations"`
	Date            string                  `json:"date"`
	Email           string                  `json:"email" binding:"omitempty,email"`
}

type HistoryPlayer struct {
	Name       string `json:"name"`
	GrossScore int    `json:"gross_score"`
	NetScore   int    `json:"net_score"`
}

// HistoryEntry groups the history rows of one saved game.
type HistoryEntry struct {
	CourseName string          `json:"course_name"`
	Location   string          `json:"location"`
	HoleCount  int             `json:"hole_count"`
	Date       string          `json:"date"`
	Players    []HistoryPlayer `json:"players"`
}
