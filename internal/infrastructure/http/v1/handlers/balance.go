package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fakturator/internal/domain/balance"
)

// BalanceHandler handles balance sheet validation.
type BalanceHandler struct {
	*BaseHandler
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(base *BaseHandler) *BalanceHandler {
	return &BalanceHandler{BaseHandler: base}
}

// Validate handles POST /balance/validate.
// A snapshot that does not balance is still a 200: imbalance is a result,
// not a request error.
func (h *BalanceHandler) Validate(c *gin.Context) {
	var snapshot balance.Snapshot
	if !h.BindJSON(c, &snapshot) {
		return
	}

	c.JSON(http.StatusOK, balance.Validate(snapshot))
}
