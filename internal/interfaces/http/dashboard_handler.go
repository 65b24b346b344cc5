package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *usecase.DashboardUseCase
	now func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{uc: uc, now: now}
}

// GetSummary devuelve los totales de la cartera.
// GET /api/dashboard/summary?company_id=&limit=
//
// limit es la cantidad de próximos vencimientos (5 por defecto). Las cuotas
// vencidas se calculan contra la fecha del servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext(), c.Query("company_id"), h.now(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
