package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/store"
)

type ConsortiumHandler struct {
	store *store.Store
}

func NewConsortiumHandler(s *store.Store) *ConsortiumHandler {
	return &ConsortiumHandler{store: s}
}

// List GET /api/consortiums?company_id=
func (h *ConsortiumHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ConsortiumsFromEntities(h.store.Consortiums(c.Query("company_id"))))
}

func (h *ConsortiumHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.Consortium(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ConsortiumFromEntity(out))
}

func (h *ConsortiumHandler) Create(c *fiber.Ctx) error {
	var in dto.ConsortiumRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.SaveConsortium(c.UserContext(), in.ToEntity(""))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConsortiumFromEntity(out))
}

func (h *ConsortiumHandler) Update(c *fiber.Ctx) error {
	current, err := h.store.Consortium(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ConsortiumRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.SaveConsortium(c.UserContext(), in.ToEntity(current.ID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ConsortiumFromEntity(out))
}

func (h *ConsortiumHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteConsortium(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Settle deja el consorcio sin saldo ni cuotas por pagar.
// POST /api/consortiums/:id/settle
func (h *ConsortiumHandler) Settle(c *fiber.Ctx) error {
	out, err := h.store.SettleConsortium(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ConsortiumFromEntity(out))
}
