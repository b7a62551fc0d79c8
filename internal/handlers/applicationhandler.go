package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/dtos"
	"github.com/devmatch/devmatch-backend/internal/services"
)

type ApplicationHandler struct {
	Jobs *services.JobService
}

func NewApplicationHandler(jobs *services.JobService) *ApplicationHandler {
	return &ApplicationHandler{Jobs: jobs}
}

// Apply is POST /jobs/:id/applications (developers only).
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Jobs.Apply(actor, c.Param("id"), req.Proposal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListForJob is GET /jobs/:id/applications (owning recruiter only).
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	apps, err := h.Jobs.ApplicationsForJob(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Accept is POST /applications/:id/accept (owning recruiter only).
func (h *ApplicationHandler) Accept(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	app, err := h.Jobs.Accept(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Reject is POST /applications/:id/reject (owning recruiter only).
func (h *ApplicationHandler) Reject(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	app, err := h.Jobs.Reject(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// MyApplications is GET /developers/me/applications.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	apps, err := h.Jobs.ApplicationsForDeveloper(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Earnings is GET /developers/me/earnings.
func (h *ApplicationHandler) Earnings(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	total, err := h.Jobs.Earnings(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": total})
}
