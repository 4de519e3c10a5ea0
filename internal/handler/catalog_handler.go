package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workoutjournal/backend/internal/middleware"
	"workoutjournal/backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type createDaytypeRequest struct {
	Name string `json:"name"`
}

type createExerciseRequest struct {
	Daytype string `json:"daytype"`
	Name    string `json:"name"`
}

func (h *CatalogHandler) ListDaytypes(c *gin.Context) {
	daytypes, apiErr := h.catalogService.ListDaytypes(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daytypes": daytypes})
}

func (h *CatalogHandler) CreateDaytype(c *gin.Context) {
	var req createDaytypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	result, apiErr := h.catalogService.CreateDaytype(c.Request.Context(), middleware.UserID(c), req.Name)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"daytype": result.Name, "created": result.Created})
}

func (h *CatalogHandler) ListExercises(c *gin.Context) {
	daytype := c.Query("daytype")
	exercises, apiErr := h.catalogService.ListExercises(c.Request.Context(), middleware.UserID(c), daytype)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daytype": daytype, "exercises": exercises})
}

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req createExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}

	result, apiErr := h.catalogService.CreateExercise(c.Request.Context(), middleware.UserID(c), req.Daytype, req.Name)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"exercise": result.Name, "created": result.Created, "daytype": req.Daytype})
}
