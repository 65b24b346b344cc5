package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// collection colección en memoria de punteros a E. Guarda y entrega copias para
// que nadie fuera del adaptador pueda mutar su contenido.
type collection[E any] struct {
	mu       sync.Mutex
	items    []*E
	getID    func(*E) string
	setID    func(*E, string)
	onDelete func(ids []string) // cascada hacia colecciones hijas
}

func newCollection[E any](getID func(*E) string, setID func(*E, string)) *collection[E] {
	return &collection[E]{getID: getID, setID: setID}
}

func clone[E any](p *E) *E {
	c := *p
	return &c
}

func (c *collection[E]) seed(items []*E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]*E, 0, len(items))
	for _, it := range items {
		c.items = append(c.items, clone(it))
	}
}

// List devuelve copias en orden de inserción; el orden de presentación lo aplica el store.
func (c *collection[E]) List(_ context.Context) ([]*E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*E, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, clone(it))
	}
	return out, nil
}

// Upsert asigna un UUID si falta y reemplaza el registro con el mismo ID.
func (c *collection[E]) Upsert(_ context.Context, record *E) (*E, error) {
	rec := clone(record)
	if c.getID(rec) == "" {
		c.setID(rec, uuid.NewString())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if c.getID(it) == c.getID(rec) {
			c.items[i] = rec
			return clone(rec), nil
		}
	}
	c.items = append(c.items, rec)
	return clone(rec), nil
}

// Delete elimina por ID. Un ID inexistente no es error (igual que DELETE en SQL).
func (c *collection[E]) Delete(_ context.Context, id string) error {
	c.deleteWhere(func(e *E) bool { return c.getID(e) == id })
	return nil
}

// Clear vacía la colección y propaga la cascada.
func (c *collection[E]) Clear(_ context.Context) error {
	c.deleteWhere(func(*E) bool { return true })
	return nil
}

func (c *collection[E]) deleteWhere(match func(*E) bool) {
	c.mu.Lock()
	kept := c.items[:0:0]
	var removed []string
	for _, it := range c.items {
		if match(it) {
			removed = append(removed, c.getID(it))
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	c.mu.Unlock()

	if len(removed) > 0 && c.onDelete != nil {
		c.onDelete(removed)
	}
}
