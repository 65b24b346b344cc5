package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/Creditos-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse modo de funcionamiento de la API.
type StatusResponse struct {
	Mode           string `json:"mode"` // demo | connected
	Remote         bool   `json:"remote"`
	InvitesEnabled bool   `json:"invites_enabled"`
	Locale         string `json:"locale"`
	Currency       string `json:"currency"`
}

// DateLayout formato de fecha en JSON (solo fecha).
const DateLayout = "2006-01-02"

// ParseDate acepta "2006-01-02" o RFC3339; vacío devuelve la fecha cero.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "fecha inválida, use AAAA-MM-DD")
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
