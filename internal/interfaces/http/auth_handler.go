package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/auth"
	"github.com/jhoicas/Creditos-api/internal/application/dto"
)

// AuthHandler sesiones delegadas al servicio de autenticación.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "email y password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SignUp godoc
// @Summary      Registrar usuario
// @Description  Sin access_token en la respuesta si el servicio exige confirmar el e-mail.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "email y password"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Authorization: Bearer <token>"})
	}
	if err := h.uc.Logout(c.UserContext(), token); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session sesión vigente con el perfil enlazado. Los clientes la consultan para
// enterarse de cambios de sesión.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Authorization: Bearer <token>"})
	}
	out, err := h.uc.Session(c.UserContext(), token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OAuthURL GET /api/auth/oauth/:provider?redirect_to=
func (h *AuthHandler) OAuthURL(c *fiber.Ctx) error {
	out, err := h.uc.OAuthURL(c.Params("provider"), c.Query("redirect_to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
