package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fakturator/internal/core/entity"
	"fakturator/internal/domain/reports"
	"fakturator/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// DocumentJournal handles GET /reports/document-journal.
// Filters the unified document view and returns rows plus aggregate totals.
func (h *ReportsHandler) DocumentJournal(c *gin.Context) {
	ctx := c.Request.Context()

	query := reports.DefaultQuery()
	if period := c.Query("period"); period != "" {
		query.Period = reports.Period(period)
	}
	query.DocType = reports.DocType(c.Query("docType"))
	query.Status = entity.Status(c.Query("status"))
	query.SearchText = c.Query("search")

	rows, totals, err := h.service.Run(ctx, query)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JournalResponse{
		Items:  rows,
		Totals: totals,
	})
}
