package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/services"
)

type UserHandler struct {
	Jobs *services.JobService
}

func NewUserHandler(jobs *services.JobService) *UserHandler {
	return &UserHandler{Jobs: jobs}
}

// Profile is GET /users/:id: the public profile plus reviews received.
func (h *UserHandler) Profile(c *gin.Context) {
	user, reviews, err := h.Jobs.Profile(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "reviews": reviews})
}

// Commission is GET /admin/commission (admins only): the platform's total
// take across completed payments.
func (h *UserHandler) Commission(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	total, err := h.Jobs.PlatformCommission(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_commission": total})
}
