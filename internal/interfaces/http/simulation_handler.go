package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/usecase"
)

type SimulationHandler struct {
	uc *usecase.SimulationUseCase
}

func NewSimulationHandler(uc *usecase.SimulationUseCase) *SimulationHandler {
	return &SimulationHandler{uc: uc}
}

// Simulate godoc
// @Summary      Simular préstamo (sistema francés)
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SimulationRequest  true  "Monto, cuotas y tasa % por período"
// @Success      200   {object}  dto.SimulationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/simulations [post]
func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Simulate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
