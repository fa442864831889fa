package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.adminconsole/internal/filters"
	countmodels "io.winapps.adminconsole/internal/models/count_filters"
)

type FiltersHandler struct {
	logger *zap.SugaredLogger
}

// NewFiltersHandler creates a new filters handler
func NewFiltersHandler(logger *zap.SugaredLogger) *FiltersHandler {
	return &FiltersHandler{logger: logger}
}

// CountFilters reports how many filters in the submitted bag are active
func (h *FiltersHandler) CountFilters(c *gin.Context) {
	var req countmodels.CountFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	summary := filters.Summarize(req.Filters)
	h.logDebug(c, "filters counted", "fields", len(req.Filters), "active", summary.Count)

	c.JSON(http.StatusOK, countmodels.CountFiltersResponse{
		Count:        summary.Count,
		HasActive:    summary.HasActive,
		ActiveFields: summary.ActiveFields,
	})
}
