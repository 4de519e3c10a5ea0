package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workoutjournal/backend/internal/middleware"
	"workoutjournal/backend/internal/service"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	view, apiErr := h.historyService.Aggregate(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("period"),
		c.Query("from_date"),
		c.Query("to_date"),
	)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}
