package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

// writeError maps the domain error taxonomy onto stable HTTP shapes. Every
// response carries a machine-readable kind plus human-readable detail.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation_failed",
			"violations": verr.Violations,
		})
		return
	}

	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_transition",
			"details": transition.Error(),
		})
		return
	}

	var sched *domain.SchedulingConflictError
	if errors.As(err, &sched) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "scheduling_conflict",
			"details": sched.Error(),
		})
		return
	}

	var dep *domain.DependencyError
	if errors.As(err, &dep) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "dependency_failed",
			"details": "a backing service is unavailable, try again",
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"details": "the order was modified concurrently, retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
