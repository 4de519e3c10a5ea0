package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workoutjournal/backend/internal/middleware"
	"workoutjournal/backend/internal/service"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type logEntryRequest struct {
	Daytype  string  `json:"daytype"`
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Rep      int     `json:"rep"`
}

func (h *WorkoutHandler) GetState(c *gin.Context) {
	view, apiErr := h.workoutService.GetState(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "state": view})
}

func (h *WorkoutHandler) LogEntry(c *gin.Context) {
	var req logEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	view, apiErr := h.workoutService.LogEntry(c.Request.Context(), middleware.UserID(c), service.LogEntryInput{
		Daytype:  req.Daytype,
		Date:     req.Date,
		Exercise: req.Exercise,
		Weight:   req.Weight,
		Rep:      req.Rep,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"state":    view,
		"warnings": view.Warnings,
	})
}

func (h *WorkoutHandler) Finish(c *gin.Context) {
	view, apiErr := h.workoutService.Finish(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"state":    view,
		"warnings": view.Warnings,
	})
}

func (h *WorkoutHandler) Summary(c *gin.Context) {
	summary, apiErr := h.workoutService.Summary(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": summary.Available,
		"rows":      summary.Rows,
	})
}

func (h *WorkoutHandler) Reset(c *gin.Context) {
	view, apiErr := h.workoutService.Reset(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "state": view})
}
