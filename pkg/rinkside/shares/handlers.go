package shares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler handles game share requests
type Handler struct {
	svc     *Service
	baseURL string
}

// NewHandler creates a new shares handler. baseURL is used to build the
// user-facing share link.
func NewHandler(svc *Service, baseURL string) *Handler {
	return &Handler{svc: svc, baseURL: strings.TrimRight(baseURL, "/")}
}

// RegisterRoutes registers share routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/games/share", h.Create)
	rg.GET("/shares/:code", h.Get)
}

// ShareGameRequest represents the request to share a game
type ShareGameRequest struct {
	GroupID string `json:"groupId"`
	GameID  string `json:"gameId"`
}

// Create mints a share code for a game
// @Summary Share a game
// @Description Create a short code resolving to one game's result JSON
// @Tags shares
// @Accept json
// @Produce json
// @Param request body ShareGameRequest true "Game reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error"
// @Router /games/share [post]
func (h *Handler) Create(c *gin.Context) {
	var req ShareGameRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.GroupID) == "" || strings.TrimSpace(req.GameID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "groupId and gameId are required"})
		return
	}

	share, err := h.svc.CreateShare(c.Request.Context(), req.GroupID, req.GameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shareCode": share.Code,
		"shareUrl":  h.baseURL + "/game?s=" + share.Code,
	})
}

// Get resolves a share code and returns the game JSON verbatim
// @Summary Resolve a share code
// @Description Return the shared game's JSON exactly as it was uploaded
// @Tags shares
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} map[string]interface{} "Raw game JSON"
// @Failure 404 {object} map[string]string "Share or game missing"
// @Router /shares/{code} [get]
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	share, err := h.svc.Share(ctx, c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		return
	}

	gameJSON, err := h.svc.GameJSON(ctx, share)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game data not found"})
		return
	}

	c.Data(http.StatusOK, "application/json", gameJSON)
}
