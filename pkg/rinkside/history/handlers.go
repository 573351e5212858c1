package history

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rinkside/rinkside/pkg/rinkside/blob"
)

// maxHistoryBytes caps uploaded score-history payloads at 512 KiB.
const maxHistoryBytes = 512 * 1024

// Handler handles score-history uploads and the storage probe
type Handler struct {
	store blob.Store
}

// NewHandler creates a new history handler
func NewHandler(store blob.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers history routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-history", h.Upload)
	rg.GET("/test-blob-connection", h.TestConnection)
}

// Upload stores a score-history snapshot as a timestamped blob. The body
// must be valid JSON and is written verbatim.
func (h *Handler) Upload(c *gin.Context) {
	if c.Request.ContentLength > maxHistoryBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history data"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxHistoryBytes+1))
	if err != nil || len(body) > maxHistoryBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history data"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is not valid JSON"})
		return
	}

	filename := fmt.Sprintf("score-history-%s.json", time.Now().UTC().Format("2006-01-02-15-04-05"))
	if err := h.store.Put(c.Request.Context(), filename, body); err != nil {
		log.Error().Err(err).Msg("error uploading score history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading score history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filename": filename})
}

// TestConnection writes a tiny probe blob to verify storage connectivity.
func (h *Handler) TestConnection(c *gin.Context) {
	key := fmt.Sprintf("connection-test-%d.txt", time.Now().UnixNano())
	if err := h.store.Put(c.Request.Context(), key, []byte("Connection test successful")); err != nil {
		log.Error().Err(err).Msg("error testing blob storage connection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error testing blob storage connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection to blob storage successful!"})
}
