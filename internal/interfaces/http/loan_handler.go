package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/application/store"
)

// LoanHandler préstamos, su cronograma y su extracto.
type LoanHandler struct {
	store *store.Store
	pdf   ports.StatementPDFGenerator
	now   func() time.Time
}

func NewLoanHandler(s *store.Store, pdf ports.StatementPDFGenerator, now func() time.Time) *LoanHandler {
	return &LoanHandler{store: s, pdf: pdf, now: now}
}

// List godoc
// @Summary      Listar préstamos
// @Tags         loans
// @Produce      json
// @Param        company_id  query  string  false  "Filtrar por empresa"
// @Param        status      query  string  false  "active | finished"
// @Success      200  {array}  dto.LoanResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	list := h.store.Loans(store.LoanFilter{CompanyID: c.Query("company_id"), Status: c.Query("status")})
	return c.JSON(dto.LoansFromEntities(list))
}

func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.Loan(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoanFromEntity(out))
}

// Create godoc
// @Summary      Crear préstamo
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoanRequest  true  "Términos del préstamo"
// @Success      201   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.LoanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := in.ToEntity("")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.store.SaveLoan(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LoanFromEntity(out))
}

func (h *LoanHandler) Update(c *fiber.Ctx) error {
	current, err := h.store.Loan(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.LoanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := in.ToEntity(current.ID)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.store.SaveLoan(c.UserContext(), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoanFromEntity(out))
}

// Delete elimina el préstamo y sus cuotas.
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteLoan(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Settle godoc
// @Summary      Quitar préstamo
// @Description  Marca el préstamo como terminado y sus cuotas abiertas como pagadas.
// @Tags         loans
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LoanResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/settle [post]
func (h *LoanHandler) Settle(c *fiber.Ctx) error {
	out, err := h.store.SettleLoan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoanFromEntity(out))
}

// GenerateInstallments arma el cronograma a partir de los términos del préstamo.
// POST /api/loans/:id/installments/generate
func (h *LoanHandler) GenerateInstallments(c *fiber.Ctx) error {
	out, err := h.store.GenerateInstallments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InstallmentsFromEntities(out))
}

func (h *LoanHandler) Installments(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.store.Loan(id); err != nil {
		return writeError(c, err)
	}
	list := h.store.Installments(store.InstallmentFilter{LoanID: id, Status: c.Query("status")})
	return c.JSON(dto.InstallmentsFromEntities(list))
}

// Statement devuelve el extracto del préstamo en PDF.
// GET /api/loans/:id/statement
func (h *LoanHandler) Statement(c *fiber.Ctx) error {
	loan, err := h.store.Loan(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	company, err := h.store.Company(loan.CompanyID)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.pdf.GenerateLoanStatement(c.UserContext(), ports.LoanStatement{
		Company:      company,
		Loan:         loan,
		Installments: h.store.Installments(store.InstallmentFilter{LoanID: loan.ID}),
		IssuedAt:     h.now(),
	})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="extracto-`+loan.ID+`.pdf"`)
	return c.Send(doc)
}
