package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/application/usecase"
)

// InstallmentHandler cuotas y barrido de vencidas.
type InstallmentHandler struct {
	store   *store.Store
	overdue *usecase.OverdueUseCase
	now     func() time.Time
}

func NewInstallmentHandler(s *store.Store, overdue *usecase.OverdueUseCase, now func() time.Time) *InstallmentHandler {
	return &InstallmentHandler{store: s, overdue: overdue, now: now}
}

// List GET /api/installments?loan_id=&status=
func (h *InstallmentHandler) List(c *fiber.Ctx) error {
	list := h.store.Installments(store.InstallmentFilter{LoanID: c.Query("loan_id"), Status: c.Query("status")})
	return c.JSON(dto.InstallmentsFromEntities(list))
}

func (h *InstallmentHandler) Create(c *fiber.Ctx) error {
	var in dto.InstallmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := in.ToEntity("")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.store.SaveInstallment(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InstallmentFromEntity(out))
}

func (h *InstallmentHandler) Update(c *fiber.Ctx) error {
	current, err := h.store.Installment(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.InstallmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := in.ToEntity(current.ID)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.store.SaveInstallment(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InstallmentFromEntity(out))
}

func (h *InstallmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteInstallment(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RefreshOverdue godoc
// @Summary      Marcar cuotas vencidas
// @Tags         installments
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/installments/refresh-overdue [post]
func (h *InstallmentHandler) RefreshOverdue(c *fiber.Ctx) error {
	changed, err := h.overdue.Run(c.UserContext(), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed})
}
