package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Creditos-api/internal/application/auth"
	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/application/usecase"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store        *store.Store
	AuthUC       *auth.AuthUseCase
	Verifier     TokenVerifier // nil en modo demo: rutas abiertas
	SimulationUC *usecase.SimulationUseCase
	DashboardUC  *usecase.DashboardUseCase
	OverdueUC    *usecase.OverdueUseCase
	InviteUC     *usecase.InviteUseCase
	PDF          ports.StatementPDFGenerator
	Status       dto.StatusResponse
	Now          func() time.Time
	Log          *logger.Logger
	AuthLimiter  *rate.Limiter // nil = DefaultAuthLimiter
}

// Router registra las rutas de la API. Cada área tiene su propio recover: un
// pánico en un handler responde 500 solo a esa petición.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.AuthLimiter == nil {
		deps.AuthLimiter = DefaultAuthLimiter()
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger(deps.Log))

	api := app.Group("/api")

	system := NewSystemHandler(deps.Store, deps.Status)
	api.Get("/status", system.Status)

	// Auth (público, con límite de peticiones)
	authGroup := api.Group("/auth", recover.New(), RateLimit(deps.AuthLimiter, deps.Log.Component("http")))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/oauth/:provider", authHandler.OAuthURL)

	// Rutas protegidas (Bearer Token en modo conectado)
	protected := api.Group("", AuthMiddleware(deps.Verifier))

	companies := protected.Group("/companies", recover.New())
	companyHandler := NewCompanyHandler(deps.Store)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	loans := protected.Group("/loans", recover.New())
	loanHandler := NewLoanHandler(deps.Store, deps.PDF, deps.Now)
	loans.Get("/", loanHandler.List)
	loans.Post("/", loanHandler.Create)
	loans.Get("/:id", loanHandler.GetByID)
	loans.Put("/:id", loanHandler.Update)
	loans.Delete("/:id", loanHandler.Delete)
	loans.Post("/:id/settle", loanHandler.Settle)
	loans.Get("/:id/installments", loanHandler.Installments)
	loans.Post("/:id/installments/generate", loanHandler.GenerateInstallments)
	loans.Get("/:id/statement", loanHandler.Statement)

	installments := protected.Group("/installments", recover.New())
	installmentHandler := NewInstallmentHandler(deps.Store, deps.OverdueUC, deps.Now)
	installments.Get("/", installmentHandler.List)
	installments.Post("/", installmentHandler.Create)
	installments.Post("/refresh-overdue", installmentHandler.RefreshOverdue)
	installments.Put("/:id", installmentHandler.Update)
	installments.Delete("/:id", installmentHandler.Delete)

	consortiums := protected.Group("/consortiums", recover.New())
	consortiumHandler := NewConsortiumHandler(deps.Store)
	consortiums.Get("/", consortiumHandler.List)
	consortiums.Post("/", consortiumHandler.Create)
	consortiums.Get("/:id", consortiumHandler.GetByID)
	consortiums.Put("/:id", consortiumHandler.Update)
	consortiums.Delete("/:id", consortiumHandler.Delete)
	consortiums.Post("/:id/settle", consortiumHandler.Settle)

	simulationHandler := NewSimulationHandler(deps.SimulationUC)
	protected.Post("/simulations", recover.New(), simulationHandler.Simulate)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Now)
	protected.Get("/dashboard/summary", recover.New(), dashboardHandler.GetSummary)

	// Administración (solo master)
	users := protected.Group("/users", recover.New(), RequireRole(entity.RoleMaster))
	userHandler := NewUserHandler(deps.Store, deps.InviteUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/invite", userHandler.Invite)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	protected.Post("/reset", recover.New(), RequireRole(entity.RoleMaster), system.Reset)
}

// RequestLogger registra cada petición con zerolog, con el usuario que la hizo
// cuando pasó por AuthMiddleware.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("user_id", GetUserID(c)).
			Str("role", GetRole(c)).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
