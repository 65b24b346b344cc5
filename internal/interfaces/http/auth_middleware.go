package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/auth"
	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// LocalPrincipal clave en c.Locals del usuario autenticado.
const LocalPrincipal = "principal"

// TokenVerifier lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, accessToken string) (*auth.Principal, error)
}

// demoPrincipal usuario implícito en modo demo: sin servicio de auth no hay
// token que verificar y todas las rutas quedan abiertas.
var demoPrincipal = &auth.Principal{UserID: "demo", Email: "demo@localhost", Role: entity.RoleMaster}

// AuthMiddleware valida el Bearer Token y deja el Principal en c.Locals.
// verifier nil = modo demo.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if verifier == nil {
			c.Locals(LocalPrincipal, demoPrincipal)
			return c.Next()
		}
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Authorization: Bearer <token>"})
		}
		p, err := verifier.VerifyToken(c.Context(), token)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequireRole autoriza por rol de negocio. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if p.Role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene perfil asignado"})
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "se requiere rol " + strings.Join(roles, " o "),
		})
	}
}

// bearerToken extrae el token del header Authorization.
func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// GetPrincipal devuelve el usuario autenticado (nil fuera de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}

func GetUserID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.UserID
	}
	return ""
}

func GetRole(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}
