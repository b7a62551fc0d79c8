package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/dtos"
	"github.com/devmatch/devmatch-backend/internal/models"
	"github.com/devmatch/devmatch-backend/internal/services"
)

// dataSourceHeader reports whether a job list came from the live source or
// the local fallback, so degraded reads stay observable.
const dataSourceHeader = "X-Data-Source"

type JobHandler struct {
	Jobs   *services.JobService
	Remote *services.RemoteService
}

func NewJobHandler(jobs *services.JobService, remote *services.RemoteService) *JobHandler {
	return &JobHandler{Jobs: jobs, Remote: remote}
}

// ListJobs is GET /jobs. Query params: search, skill, sort.
func (h *JobHandler) ListJobs(c *gin.Context) {
	res := h.Remote.LoadJobs(c.Request.Context())
	jobs := services.FilterAndSortJobs(res.Jobs, services.JobQuery{
		SearchTerm:  c.Query("search"),
		SkillFilter: c.Query("skill"),
		SortOrder:   services.SortOrder(c.Query("sort")),
	})
	c.Header(dataSourceHeader, string(res.Source))
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// FeaturedJobs is GET /jobs/featured?limit=N (default 3).
func (h *JobHandler) FeaturedJobs(c *gin.Context) {
	limit := 3
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	res := h.Remote.LoadFeaturedJobs(c.Request.Context(), limit)
	c.Header(dataSourceHeader, string(res.Source))
	c.JSON(http.StatusOK, gin.H{"jobs": res.Jobs})
}

// ListSkills is GET /jobs/skills: the distinct required skills across the
// currently listed jobs, for the filter dropdown.
func (h *JobHandler) ListSkills(c *gin.Context) {
	res := h.Remote.LoadJobs(c.Request.Context())
	c.Header(dataSourceHeader, string(res.Source))
	c.JSON(http.StatusOK, gin.H{"skills": services.UniqueSortedSkills(res.Jobs)})
}

// GetJob is GET /jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.Jobs.Job(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// PostJob is POST /jobs (recruiters only).
func (h *JobHandler) PostJob(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	var req dtos.PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Jobs.PostJob(actor, models.JobDraft{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Budget:         req.Budget,
		Duration:       req.Duration,
		Location:       req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// CompleteJob is POST /jobs/:id/complete (owning recruiter only).
func (h *JobHandler) CompleteJob(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	var req dtos.CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	payment, review, err := h.Jobs.Complete(actor, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "review": review})
}

// CancelJob is POST /jobs/:id/cancel (owning recruiter only).
func (h *JobHandler) CancelJob(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	job, err := h.Jobs.Cancel(actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// MyJobs is GET /recruiters/me/jobs.
func (h *JobHandler) MyJobs(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	jobs, err := h.Jobs.JobsForRecruiter(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// CompletedJobs is GET /me/completed-jobs, role-sensitive.
func (h *JobHandler) CompletedJobs(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	jobs, err := h.Jobs.CompletedJobs(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
