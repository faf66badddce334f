package game

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/scoring"
	"github.com/wpras/golfku/pkg/mailer"
	"github.com/wpras/golfku/pkg/pdf"
)

const defaultHistoryLimit = 20

type GameController struct {
	repo    GameRepository
	catalog *course.Catalog
	config  *config.Config
	mailer  *mailer.Mailer
}

func NewGameController(repo GameRepository, catalog *course.Catalog, cfg *config.Config, m *mailer.Mailer) *GameController {
	return &GameController{
		repo:    repo,
		catalog: catalog,
		config:  cfg,
		mailer:  m,
	}
}

// CreateGame godoc
// @Summary Start a game
// @Description Create a game on a catalog course so results can be saved against it
// @Tags games
// @Accept json
// @Produce json
// @Param game body CreateGameRequest true "Course and hole count"
// @Success 201 {object} map[string]string "Game and course IDs"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /games [post]
func (gc *GameController) CreateGame(ctx *gin.Context) {
	var req CreateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.HoleCount == 0 {
		req.HoleCount = 18
	}

	co, ok := gc.catalog.ByID(req.CourseID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	g, err := gc.repo.CreateGameForCourse(co, req.HoleCount, co.ParFor(req.HoleCount))
	if err != nil {
		log.Printf("Error creating game: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": g.ID, "course_id": g.CourseID})
}

// Calculate godoc
// @Summary Score a round
// @Description Compute handicaps, nets, ranks and recommendations for every player. When game_id is set the results are also saved to history.
// @Tags games
// @Accept json
// @Produce json
// @Param round body CalculateRequest true "Course, hole count and player scores"
// @Success 200 {object} CalculateResponse "Scored round"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /calculate [post]
func (gc *GameController) Calculate(ctx *gin.Context) {
	var req CalculateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.HoleCount == 0 {
		req.HoleCount = 18
	}

	co, ok := gc.catalog.ByID(req.CourseID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	round, err := scoring.ScoreRound(co, req.HoleCount, req.Players)
	if err != nil {
		if errors.Is(err, scoring.ErrNoValidPlayers) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid players to score"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score round"})
		return
	}
	if len(round.Skipped) > 0 {
		log.Printf("Skipped %d invalid player entries: %v", len(round.Skipped), round.Skipped)
	}

	// A failed save must not cost the group their scorecard.
	if req.GameID != "" {
		if err := gc.repo.SaveResults(req.GameID, co.Name, co.Location, req.HoleCount, round.Results); err != nil {
			log.Printf("Error saving results for game %s: %v", req.GameID, err)
		}
	}

	ctx.JSON(http.StatusOK, CalculateResponse{
		Course:          co,
		HoleCount:       req.HoleCount,
		TotalPar:        round.TotalPar,
		Results:         round.Results,
		Recommendations: round.Recommendations,
		Date:            time.Now().Format("02-01-2006"),
	})
}

// GetHistory godoc
// @Summary Round history
// @Description Get recently played rounds, newest first, grouped by round
// @Tags games
// @Produce json
// @Param limit query int false "Maximum number of rounds" default(20)
// @Success 200 {array} HistoryEntry "Recent rounds"
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /games/history [get]
func (gc *GameController) GetHistory(ctx *gin.Context) {
	limit := defaultHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := gc.repo.History(limit)
	if err != nil {
		log.Printf("Error fetching history: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// DownloadScorecard godoc
// @Summary Download scorecard PDF
// @Description Render a scored round as a PDF scorecard
// @Tags games
// @Accept json
// @Produce application/pdf
// @Param scorecard body ScorecardRequest true "Scored round"
// @Success 200 {file} binary "PDF scorecard"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /games/scorecard/pdf [post]
func (gc *GameController) DownloadScorecard(ctx *gin.Context) {
	var req ScorecardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, date, err := gc.renderScorecard(&req)
	if err != nil {
		log.Printf("Error generating PDF: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=scorecard_%s.pdf", date))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// EmailScorecard godoc
// @Summary Email scorecard
// @Description Render a scored round as a PDF and send it to the given address
// @Tags games
// @Accept json
// @Produce json
// @Param scorecard body ScorecardRequest true "Scored round and recipient email"
// @Success 200 {object} map[string]interface{} "Send confirmation"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]interface{} "Send failed"
// @Failure 503 {object} map[string]interface{} "Email service not configured"
// @Router /games/scorecard/email [post]
func (gc *GameController) EmailScorecard(ctx *gin.Context) {
	var req ScorecardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if !gc.mailer.Configured() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Email service not configured. Please download the PDF instead.",
		})
		return
	}

	data, date, err := gc.renderScorecard(&req)
	if err != nil {
		log.Printf("Error generating PDF: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate PDF"})
		return
	}

	if err := gc.mailer.SendScorecard(req.Email, date, data); err != nil {
		log.Printf("Error sending scorecard to %s: %v", req.Email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send email"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully!"})
}

func (gc *GameController) renderScorecard(req *ScorecardRequest) ([]byte, string, error) {
	if req.HoleCount == 0 {
		req.HoleCount = 18
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("02-01-2006")
	}

	rows := make([]pdf.Row, 0, len(req.Results))
	for _, res := range req.Results {
		rows = append(rows, pdf.Row{
			Rank:           res.Rank,
			Name:           res.Name,
			Tee:            res.Tee,
			CourseHandicap: res.CourseHandicap,
			Gross:          res.GrossScore,
			Net:            res.NetScore,
			VsPar:          res.VsPar,
			Scores:         res.Scores,
		})
	}

	data, err := pdf.Render(pdf.Scorecard{
		CourseName:      req.Course.Name,
		Location:        req.Course.Location,
		Date:            date,
		HoleCount:       req.HoleCount,
		TotalPar:        req.Course.ParFor(req.HoleCount),
		HolePars:        req.Course.ParsFor(req.HoleCount),
		Rows:            rows,
		Recommendations: req.Recommendations,
	})
	return data, date, err
}
