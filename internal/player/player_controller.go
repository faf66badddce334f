package player

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlayerController struct {
	repo PlayerRepository
}

func NewPlayerController(repo PlayerRepository) *PlayerController {
	return &PlayerController{repo: repo}
}

// GetPlayers godoc
// @Summary List players
// @Description Get all players ordered by name
// @Tags players
// @Produce json
// @Success 200 {array} Player
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /players [get]
func (pc *PlayerController) GetPlayers(ctx *gin.Context) {
	players, err := pc.repo.ListPlayers()
	if err != nil {
		log.Printf("Error fetching players: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch players"})
		return
	}
	ctx.JSON(http.StatusOK, players)
}

// CreatePlayer godoc
// @Summary Create a player
// @Description Register a new scorecard participant
// @Tags players
// @Accept json
// @Produce json
// @Param player body CreatePlayerRequest true "Player details"
// @Success 201 {object} Player
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /players [post]
func (pc *PlayerController) CreatePlayer(ctx *gin.Context) {
	var req CreatePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	p := &Player{Name: req.Name, Email: req.Email}
	if err := pc.repo.CreatePlayer(p); err != nil {
		log.Printf("Error creating player: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create player"})
		return
	}

	ctx.JSON(http.StatusCreated, p)
}
