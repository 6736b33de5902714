package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/id"
	"fakturator/internal/domain"
	"fakturator/internal/domain/documents/calculation"
	domainFilter "fakturator/internal/domain/filter"
	"fakturator/internal/domain/sharing"
	"fakturator/internal/infrastructure/http/v1/dto"
)

// CalculationHandler handles HTTP requests for tax calculation documents.
type CalculationHandler struct {
	*BaseHandler
	service  *calculation.Service
	resolver *sharing.Resolver
}

// NewCalculationHandler creates a new calculation handler.
func NewCalculationHandler(base *BaseHandler, service *calculation.Service, resolver *sharing.Resolver) *CalculationHandler {
	return &CalculationHandler{
		BaseHandler: base,
		service:     service,
		resolver:    resolver,
	}
}

// List handles GET - list calculations with filtering.
func (h *CalculationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if filterJSON := c.Query("filter"); filterJSON != "" {
		var advFilters []domainFilter.Item
		if err := json.Unmarshal([]byte(filterJSON), &advFilters); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter format (json expected)"))
			return
		}
		filter.AdvancedFilters = advFilters
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i := range result.Items {
		items[i] = dto.FromCalculation(&result.Items[i])
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /:id - get single calculation.
func (h *CalculationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCalculation(doc))
}

// Create handles POST - create new calculation.
func (h *CalculationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCalculationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCalculation(doc))
}

// Update handles PUT /:id - update calculation content.
func (h *CalculationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCalculationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCalculation(doc))
}

// Delete handles DELETE /:id - delete calculation.
func (h *CalculationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Transition handles POST /:id/status - move calculation through its lifecycle.
func (h *CalculationHandler) Transition(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.TransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Transition(ctx, docID, entity.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCalculation(doc))
}

// Share handles POST /:id/share - generate the public access token.
func (h *CalculationHandler) Share(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	token, err := h.resolver.GenerateToken(ctx, sharing.DocTypeCalculation, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareResponse{
		Token:     token,
		PublicURL: "/public/" + string(sharing.DocTypeCalculation) + "/" + docID.String() + "?token=" + token,
	})
}
