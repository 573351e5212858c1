package roster

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

// Handler handles default-player roster requests
type Handler struct {
	svc *Service
}

// NewHandler creates a new roster handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers roster routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/move", h.Move)
	rg.POST("/add", h.Add)
	rg.POST("/delete", h.Delete)
	rg.POST("/save", h.Save)
}

// PlayerMoveRequest represents the request to move a player between teams
type PlayerMoveRequest struct {
	ID   int64  `json:"id"`
	Team string `json:"team"`
}

// PlayerAddRequest represents the request to add a player
type PlayerAddRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// PlayerDeleteRequest represents the request to delete a player
type PlayerDeleteRequest struct {
	ID int64 `json:"id"`
}

// List returns the current default roster
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Players())
}

// Move reassigns a player to a team
func (h *Handler) Move(c *gin.Context) {
	var req PlayerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !h.svc.Move(req.ID, req.Team) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Add creates a new player on the roster
func (h *Handler) Add(c *gin.Context) {
	var req PlayerAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required"})
		return
	}
	if req.Team == "" {
		req.Team = "noteam"
	}

	player := h.svc.Add(strings.TrimSpace(req.Name), req.Team)
	c.JSON(http.StatusOK, player)
}

// Delete removes a player from the roster
func (h *Handler) Delete(c *gin.Context) {
	var req PlayerDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !h.svc.Delete(req.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Save replaces the entire roster
func (h *Handler) Save(c *gin.Context) {
	var players []models.Player
	if err := c.ShouldBindJSON(&players); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	h.svc.Save(players)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
