package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
)

// collection implementa repository.Collection sobre una tabla. No guarda estado:
// un fallo nunca deja una vista cacheada a medio actualizar.
type collection[E any] struct {
	q     Querier
	table *table[E]
}

var _ repository.LoanRepository = (*collection[entity.Loan])(nil)

func newCollection[E any](q Querier, t *table[E]) *collection[E] {
	return &collection[E]{q: q, table: t}
}

// List devuelve todas las filas en el orden de la tabla.
func (c *collection[E]) List(ctx context.Context) ([]*E, error) {
	rows, err := c.q.Query(ctx, c.table.listSQL())
	if err != nil {
		return nil, backendError("listar "+c.table.name, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, backendError("listar "+c.table.name, err)
	}
	out := make([]*E, 0, len(maps))
	for _, m := range maps {
		out = append(out, c.table.decode(m))
	}
	return out, nil
}

// Upsert inserta o actualiza por id y devuelve la fila tal como quedó guardada.
func (c *collection[E]) Upsert(ctx context.Context, record *E) (*E, error) {
	query, args := c.table.upsertSQL(record)
	rows, err := c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, backendError("guardar en "+c.table.name, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, backendError("guardar en "+c.table.name, err)
	}
	return c.table.decode(m), nil
}

// Delete borra por id; un id inexistente no es error.
func (c *collection[E]) Delete(ctx context.Context, id string) error {
	if _, err := c.q.Exec(ctx, "DELETE FROM "+c.table.name+" WHERE id = $1", id); err != nil {
		return backendError("eliminar de "+c.table.name, err)
	}
	return nil
}

// Clear vacía la tabla. Los hijos se borran por ON DELETE CASCADE.
func (c *collection[E]) Clear(ctx context.Context) error {
	if _, err := c.q.Exec(ctx, "DELETE FROM "+c.table.name); err != nil {
		return backendError("vaciar "+c.table.name, err)
	}
	return nil
}
