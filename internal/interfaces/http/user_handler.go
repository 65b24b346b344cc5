package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/application/usecase"
)

// UserHandler perfiles de usuario (solo master).
type UserHandler struct {
	store  *store.Store
	invite *usecase.InviteUseCase
}

func NewUserHandler(s *store.Store, invite *usecase.InviteUseCase) *UserHandler {
	return &UserHandler{store: s, invite: invite}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.UsersFromEntities(h.store.Users()))
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.SaveUser(c.UserContext(), in.ToEntity(""))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserFromEntity(out))
}

// Update conserva el enlace con el usuario de auth si el body no trae uno.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	current, err := h.store.User(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec := in.ToEntity(current.ID)
	if rec.AuthUserID == "" {
		rec.AuthUserID = current.AuthUserID
	}
	out, err := h.store.SaveUser(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserFromEntity(out))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invite godoc
// @Summary      Invitar usuario
// @Description  Requiere la service role key; sin ella responde 503 NOT_CONFIGURED.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "Nombre, e-mail y rol"
// @Success      201   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/users/invite [post]
func (h *UserHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.invite.Invite(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
