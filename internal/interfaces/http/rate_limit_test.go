package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apphttp "github.com/jhoicas/Creditos-api/internal/interfaces/http"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

func TestRateLimit_AgotaRafaga(t *testing.T) {
	app := fiber.New()
	// sin reposición: solo la ráfaga inicial de 2
	app.Use(apphttp.RateLimit(rate.NewLimiter(0, 2), logger.Nop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_LimiteEnAuth(t *testing.T) {
	app, _ := demoAppWith(t, nil, rate.NewLimiter(0, 1))

	first := call(t, app, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, first.StatusCode)

	second := call(t, app, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"x"}`)
	require.Equal(t, http.StatusTooManyRequests, second.StatusCode)

	// el resto de la API no comparte el limitador
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/companies", nil).StatusCode)
}
