package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/id"
	"fakturator/internal/domain"
	"fakturator/internal/domain/paylink"
	"fakturator/internal/infrastructure/http/v1/dto"
)

// PayLinkHandler handles HTTP requests for pay links (admin side).
type PayLinkHandler struct {
	*BaseHandler
	service *paylink.Service
}

// NewPayLinkHandler creates a new pay link handler.
func NewPayLinkHandler(base *BaseHandler, service *paylink.Service) *PayLinkHandler {
	return &PayLinkHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET - list pay links.
func (h *PayLinkHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	now := time.Now()
	items := make([]any, len(result.Items))
	for i := range result.Items {
		items[i] = dto.FromPayLink(&result.Items[i], now)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /:id - get single pay link.
// Expired links stay visible here; only the public route hides them.
func (h *PayLinkHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	linkID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	link, err := h.service.GetByID(ctx, linkID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayLink(link, time.Now()))
}

// Create handles POST - create new pay link.
func (h *PayLinkHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePayLinkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	link := req.ToEntity()
	if err := h.service.Create(ctx, link); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPayLink(link, time.Now()))
}

// Update handles PUT /:id - update pay link.
func (h *PayLinkHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	linkID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdatePayLinkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	link, err := h.service.GetByID(ctx, linkID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(link)

	if err := h.service.Update(ctx, link); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayLink(link, time.Now()))
}

// Delete handles DELETE /:id - delete pay link.
func (h *PayLinkHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	linkID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, linkID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
