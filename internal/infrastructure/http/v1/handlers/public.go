package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fakturator/internal/domain/paylink"
	"fakturator/internal/domain/sharing"
	"fakturator/internal/infrastructure/http/v1/dto"
)

// PublicHandler serves unauthenticated document and pay link views.
// Everything here answers NotFound for anything not explicitly shared.
type PublicHandler struct {
	*BaseHandler
	resolver *sharing.Resolver
	paylinks *paylink.Service
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(base *BaseHandler, resolver *sharing.Resolver, paylinks *paylink.Service) *PublicHandler {
	return &PublicHandler{
		BaseHandler: base,
		resolver:    resolver,
		paylinks:    paylinks,
	}
}

// Document handles GET /public/:docType/:docID?token=...
// The token must belong to the exact document named in the URL.
func (h *PublicHandler) Document(c *gin.Context) {
	ctx := c.Request.Context()

	docType, err := sharing.ParseDocType(c.Param("docType"))
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.resolver.Resolve(ctx, docType, c.Param("docID"), c.Query("token"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Snapshot handles GET /public/snapshot?token=...
// Returns the payload archived at share time, exactly as it was rendered.
func (h *PublicHandler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := h.resolver.Snapshot(ctx, c.Query("token"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// PayLink handles GET /pay/:linkID - resolve a pay link for the payer.
func (h *PublicHandler) PayLink(c *gin.Context) {
	ctx := c.Request.Context()

	link, err := h.paylinks.Resolve(ctx, c.Param("linkID"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayLinkPublic(link))
}
