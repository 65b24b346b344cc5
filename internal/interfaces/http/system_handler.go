package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/store"
)

// SystemHandler estado de la API y reinicio de datos.
type SystemHandler struct {
	store  *store.Store
	status dto.StatusResponse
}

func NewSystemHandler(s *store.Store, status dto.StatusResponse) *SystemHandler {
	status.Remote = s.Remote()
	return &SystemHandler{store: s, status: status}
}

// Status GET /api/status (público): modo demo o conectado y si hay invitaciones.
func (h *SystemHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.status)
}

// Reset godoc
// @Summary      Reiniciar datos
// @Description  Vacía cuotas, préstamos y empresas (en ese orden). Solo master.
// @Tags         system
// @Produce      json
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reset [post]
func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	if err := h.store.ResetData(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
