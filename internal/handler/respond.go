package handler

import (
	"errors"
	"net/http"

	"github.com/twende-org/mauzo/internal/workflow"

	"github.com/gin-gonic/gin"
)

// respondWorkflowError maps workflow sentinel errors onto HTTP statuses.
func respondWorkflowError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workflow.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrDispatchClosed):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
