package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "workoutjournal/backend/internal/errors"
)

// writeError renders the flat {"detail": message} error body the UI expects.
// The code field is kept alongside it for programmatic clients.
func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "internal server error",
			"code":   "internal_error",
		})
		return
	}
	c.JSON(apiErr.Status, gin.H{
		"detail": apiErr.Message,
		"code":   apiErr.Code,
	})
}

func badJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"detail": "invalid request body",
		"code":   "invalid_json",
	})
}
