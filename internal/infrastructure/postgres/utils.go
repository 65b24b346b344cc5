package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Creditos-api/internal/domain"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx: las colecciones funcionan igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation 23503: padre inexistente o hijos que impiden borrar.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// backendError traduce un error de pgx a *domain.BackendError con un mensaje que se
// puede mostrar tal cual al usuario.
func backendError(op string, err error) error {
	var pgErr *pgconn.PgError
	msg := "no se pudo completar la operación en la base de datos"
	switch {
	case isUniqueViolation(err):
		msg = "ya existe un registro con esos datos"
		if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
			msg = fmt.Sprintf("ya existe un registro con esos datos (%s)", pgErr.ConstraintName)
		}
	case isForeignKeyViolation(err):
		msg = "el registro relacionado no existe"
	case pgCode(err) == "23502":
		errors.As(err, &pgErr)
		msg = fmt.Sprintf("falta el campo obligatorio %s", pgErr.ColumnName)
	case pgCode(err) == "23514":
		msg = "valor fuera de los permitidos"
	case pgCode(err) == "22P02":
		msg = "identificador o valor con formato inválido"
	case errors.As(err, &pgErr):
		msg = strings.TrimSpace(pgErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		msg = "tiempo de espera agotado con la base de datos"
	case errors.Is(err, context.Canceled):
		msg = "operación cancelada"
	}
	return &domain.BackendError{Op: op, Message: msg, Err: err}
}
