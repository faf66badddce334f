package game

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/models"
	"github.com/wpras/golfku/internal/player"
	"github.com/wpras/golfku/internal/scoring"
)

type GameRepository interface {
	CreateGameForCourse(co *course.Course, holeCount, totalPar int) (*Game, error)
	SaveResults(gameID, courseName, location string, holeCount int, results []*scoring.PlayerResult) error
	History(limit int) ([]HistoryEntry, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// CreateGameForCourse starts a round on the given catalog course,
// materializing the course row on first use.
func (r *gameRepository) CreateGameForCourse(co *course.Course, holeCount, totalPar int) (*Game, error) {
	var g *Game
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var record course.CourseRecord
		if err := tx.Where("course_id = ?", co.ID).First(&record).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			created := course.RecordFromCourse(co)
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			record = *created
		}
		g = &Game{
			CourseID:  record.ID,
			HoleCount: holeCount,
			Status:    StatusInProgress,
			TotalPar:  totalPar,
		}
		return tx.Create(g).Error
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SaveResults persists every player's line of a finished round and marks
// the game completed. Players are matched by name so repeat rounds build
// up a history under one player row.
func (r *gameRepository) SaveResults(gameID, courseName, location string, holeCount int, results []*scoring.PlayerResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, res := range results {
			var p player.Player
			if err := tx.Where("name = ?", res.Name).First(&p).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				p = player.Player{Name: res.Name, Email: res.Email}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			}

			result := &GameResult{
				GameID:         gameID,
				PlayerID:       p.ID,
				Tee:            res.Tee,
				HandicapIndex:  res.HandicapIndex,
				CourseHandicap: res.CourseHandicap,
				GrossScore:     res.GrossScore,
				NetScore:       res.NetScore,
				VsPar:          res.VsPar,
				Rank:           res.Rank,
				Scores:         models.IntList(res.Scores),
			}
			if err := tx.Create(result).Error; err != nil {
				return err
			}

			history := &ScoreHistory{
				PlayerName:  res.Name,
				PlayerEmail: res.Email,
				CourseName:  courseName,
				Location:    location,
				HoleCount:   holeCount,
				GrossScore:  res.GrossScore,
				NetScore:    res.NetScore,
				VsPar:       res.VsPar,
				Scores:      models.IntList(res.Scores),
			}
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return tx.Model(&Game{}).Where("id = ?", gameID).Update("status", StatusCompleted).Error
	})
}

// History returns recent rounds, newest first. Rows written in the same
// save share a timestamp down to the minute, which is what groups a
// round's players back together.
func (r *gameRepository) History(limit int) ([]HistoryEntry, error) {
	var rows []ScoreHistory
	if err := r.db.Order("played_at DESC").Limit(limit * 10).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, limit)
	index := make(map[string]int)
	for _, row := range rows {
		key := row.CourseName + "_" + row.PlayedAt.Format("2006-01-02 15:04")
		i, ok := index[key]
		if !ok {
			if len(entries) >= limit {
				continue
			}
			entries = append(entries, HistoryEntry{
				CourseName: row.CourseName,
				Location:   row.Location,
				HoleCount:  row.HoleCount,
				Date:       row.PlayedAt.Format("2006-01-02"),
			})
			i = len(entries) - 1
			index[key] = i
		}
		entries[i].Players = append(entries[i].Players, HistoryPlayer{
			Name:       row.PlayerName,
			GrossScore: row.GrossScore,
			NetScore:   row.NetScore,
		})
	}
	return entries, nil
}
