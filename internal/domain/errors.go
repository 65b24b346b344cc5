package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrBackend       = errors.New("error del backend")
	ErrNotConfigured = errors.New("funcionalidad no configurada")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
)

// ValidationError falla de validación detectada antes de cualquier I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un *ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// BackendError fallo del almacenamiento remoto (red, constraint, auth). Message es
// legible para el usuario y se muestra tal cual.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrBackend).
func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// NotConfigured error para funcionalidades que requieren credenciales ausentes.
func NotConfigured(feature string) error {
	return fmt.Errorf("%s: %w", feature, ErrNotConfigured)
}
