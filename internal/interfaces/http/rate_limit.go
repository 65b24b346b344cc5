package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

// DefaultAuthLimiter 10 peticiones por segundo con ráfagas de 30, compartido por
// todas las rutas públicas de auth.
func DefaultAuthLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(100*time.Millisecond), 30)
}

// RateLimit responde 429 cuando el limitador no tiene tokens disponibles.
func RateLimit(limiter *rate.Limiter, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			log.Warn().Str("method", c.Method()).Str("path", c.Path()).Str("ip", c.IP()).Msg("límite de peticiones excedido")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente de nuevo en unos segundos",
			})
		}
		return c.Next()
	}
}
