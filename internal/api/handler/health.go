package handler

import (
	"net/http"

	"github.com/mcoot/staffdir/internal/api/response"
	"github.com/mcoot/staffdir/internal/dependencies/clock"
	"github.com/mcoot/staffdir/internal/model"
)

// HealthHandler reports liveness
type HealthHandler struct {
	clock clock.Clock
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(clk clock.Clock) *HealthHandler {
	return &HealthHandler{clock: clk}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{
		Status:    "OK",
		Timestamp: model.FormatDate(h.clock.Now()),
	})
}
