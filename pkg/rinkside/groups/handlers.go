package groups

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

// Handler handles group and membership requests
type Handler struct {
	svc *Service
}

// NewHandler creates a new groups handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers group routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/join", h.Join)
	rg.POST("/:id/members", h.AddMember)
	rg.DELETE("/:id/members/:code", h.RevokeMember)
	rg.GET("/:id/sas/refresh", h.RefreshSas)
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest represents the request to add a member
type AddMemberRequest struct {
	Label string `json:"label"`
}

// Create creates a new group with a fresh admin code
// @Summary Create a group
// @Description Create a new group and receive its admin code
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error"
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"groupId":   group.ID,
		"name":      group.Name,
		"adminCode": group.AdminCode,
	})
}

// Join resolves an admin or member code to a group plus storage access
// @Summary Join a group by code
// @Description Resolve an admin or member access code and receive SAS URLs
// @Tags groups
// @Produce json
// @Param code query string true "Admin or member code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Unknown code"
// @Router /groups/join [get]
func (h *Handler) Join(c *gin.Context) {
	code := c.Query("code")
	if strings.TrimSpace(code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}
	ctx := c.Request.Context()

	// Admin code first, then member codes.
	group, err := h.svc.GroupByAdminCode(ctx, code)
	if err == nil {
		h.joined(c, group, true)
		return
	}
	if !errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up code"})
		return
	}

	group, _, err = h.svc.GroupByMemberCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid code"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up code"})
		}
		return
	}
	h.joined(c, group, false)
}

func (h *Handler) joined(c *gin.Context, group *models.Group, isAdmin bool) {
	// Members get write-capable SAS too; member codes gate membership
	// management, not data access.
	sasUrls, err := h.svc.SasURLs(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate storage access"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"groupId":   group.ID,
		"groupName": group.Name,
		"isAdmin":   isAdmin,
		"sasUrls":   sasUrls,
	})
}

// AddMember adds a member access entry to a group (admin code required)
func (h *Handler) AddMember(c *gin.Context) {
	group, ok := h.authorizeAdmin(c, c.Query("adminCode"))
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Label) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Label is required"})
		return
	}

	member, err := h.svc.AddMember(c.Request.Context(), group.ID, req.Label)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":  member.Code,
		"label": member.Label,
	})
}

// RevokeMember deactivates a member code (admin code required)
func (h *Handler) RevokeMember(c *gin.Context) {
	group, ok := h.authorizeAdmin(c, c.Query("adminCode"))
	if !ok {
		return
	}

	revoked, err := h.svc.RevokeMember(c.Request.Context(), group.ID, c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke member"})
		return
	}
	if !revoked {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RefreshSas reissues SAS URLs for a valid admin or active member code
func (h *Handler) RefreshSas(c *gin.Context) {
	code := c.Query("code")
	if strings.TrimSpace(code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	group, err := h.svc.GroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up group"})
		}
		return
	}

	if !strings.EqualFold(group.AdminCode, code) && !hasActiveMember(group, code) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid code"})
		return
	}

	sasUrls, err := h.svc.SasURLs(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate storage access"})
		return
	}
	c.JSON(http.StatusOK, sasUrls)
}

// authorizeAdmin loads the group from the :id route param and checks the
// admin code. On failure it writes the response and returns ok=false.
func (h *Handler) authorizeAdmin(c *gin.Context, adminCode string) (*models.Group, bool) {
	if strings.TrimSpace(adminCode) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin code is required"})
		return nil, false
	}

	group, err := h.svc.GroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up group"})
		}
		return nil, false
	}

	if !strings.EqualFold(group.AdminCode, adminCode) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin code"})
		return nil, false
	}
	return group, true
}

func hasActiveMember(group *models.Group, code string) bool {
	for _, m := range group.Members {
		if m.Active && strings.EqualFold(m.Code, code) {
			return true
		}
	}
	return false
}
