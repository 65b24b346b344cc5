package postgres

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type kind int

const (
	kindText kind = iota
	kindUUID
	kindDecimal
	kindInt
	kindDate
	kindTimestamp
)

// column une un campo de la entidad con su columna snake_case. get y set son
// inversas: decode(encode(e)) == e para cualquier e.
type column[E any] struct {
	name string
	kind kind
	// generated: si el valor está vacío la columna se omite del INSERT y la
	// base aplica su DEFAULT (id, created_at).
	generated bool
	get       func(*E) any
	set       func(*E, any)
}

// table describe una tabla completa; columns[0] siempre es id.
type table[E any] struct {
	name    string
	orderBy string
	columns []column[E]
}

func idCol[E any](p func(*E) *string) column[E] {
	c := uuidCol("id", p)
	c.generated = true
	return c
}

func textCol[E any](name string, p func(*E) *string) column[E] {
	return column[E]{
		name: name, kind: kindText,
		get: func(e *E) any { return *p(e) },
		set: func(e *E, v any) { *p(e) = toString(v) },
	}
}

// uuidCol guarda "" como NULL.
func uuidCol[E any](name string, p func(*E) *string) column[E] {
	return column[E]{
		name: name, kind: kindUUID,
		get: func(e *E) any {
			if *p(e) == "" {
				return nil
			}
			return *p(e)
		},
		set: func(e *E, v any) { *p(e) = toString(v) },
	}
}

func decimalCol[E any](name string, p func(*E) *decimal.Decimal) column[E] {
	return column[E]{
		name: name, kind: kindDecimal,
		get: func(e *E) any { return *p(e) },
		set: func(e *E, v any) { *p(e) = toDecimal(v) },
	}
}

func intCol[E any](name string, p func(*E) *int) column[E] {
	return column[E]{
		name: name, kind: kindInt,
		get: func(e *E) any { return *p(e) },
		set: func(e *E, v any) { *p(e) = toInt(v) },
	}
}

// dateCol guarda la fecha cero como NULL.
func dateCol[E any](name string, p func(*E) *time.Time) column[E] {
	return column[E]{
		name: name, kind: kindDate,
		get: func(e *E) any {
			if p(e).IsZero() {
				return nil
			}
			return *p(e)
		},
		set: func(e *E, v any) { *p(e) = toTime(v) },
	}
}

func optionalDateCol[E any](name string, p func(*E) **time.Time) column[E] {
	return column[E]{
		name: name, kind: kindDate,
		get: func(e *E) any {
			if *p(e) == nil || (*p(e)).IsZero() {
				return nil
			}
			return **p(e)
		},
		set: func(e *E, v any) {
			t := toTime(v)
			if t.IsZero() {
				*p(e) = nil
				return
			}
			*p(e) = &t
		},
	}
}

func createdAtCol[E any](p func(*E) *time.Time) column[E] {
	c := dateCol("created_at", p)
	c.kind = kindTimestamp
	c.generated = true
	return c
}

func (t *table[E]) encode(e *E) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, c := range t.columns {
		row[c.name] = c.get(e)
	}
	return row
}

func (t *table[E]) decode(row map[string]any) *E {
	e := new(E)
	for _, c := range t.columns {
		c.set(e, row[c.name])
	}
	return e
}

// selectList columnas para SELECT/RETURNING; los uuid se leen como texto.
func (t *table[E]) selectList() string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		if c.kind == kindUUID {
			parts[i] = c.name + "::text AS " + c.name
			continue
		}
		parts[i] = c.name
	}
	return strings.Join(parts, ", ")
}

func (t *table[E]) listSQL() string {
	q := "SELECT " + t.selectList() + " FROM " + t.name
	if t.orderBy != "" {
		q += " ORDER BY " + t.orderBy
	}
	return q
}

// upsertSQL arma INSERT … ON CONFLICT (id) DO UPDATE … RETURNING para el registro.
// Las columnas generadas vacías no se envían.
func (t *table[E]) upsertSQL(e *E) (string, []any) {
	var (
		cols    []string
		holders []string
		sets    []string
		args    []any
	)
	for _, c := range t.columns {
		v := c.get(e)
		if c.generated && v == nil {
			continue
		}
		args = append(args, v)
		cols = append(cols, c.name)
		holders = append(holders, "$"+strconv.Itoa(len(args)))
		if c.name != "id" {
			sets = append(sets, c.name+" = EXCLUDED."+c.name)
		}
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s RETURNING %s",
		t.name, strings.Join(cols, ", "), strings.Join(holders, ", "), strings.Join(sets, ", "), t.selectList())
	return q, args
}

// ─── Coerción ───────────────────────────────────────────────────────────────
// Cualquier columna numérica puede llegar como texto (vistas, REST, CSV importado);
// lo no numérico o ausente vale cero.

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		return toDecimal(string(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return toDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int16:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case pgtype.Numeric:
		if !x.Valid || x.NaN || x.InfinityModifier != pgtype.Finite || x.Int == nil {
			return decimal.Zero
		}
		return decimal.NewFromBigInt(x.Int, x.Exp)
	default:
		return decimal.Zero
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(x)
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return int(toDecimal(s).IntPart())
	case []byte:
		return toInt(string(x))
	case decimal.Decimal, pgtype.Numeric:
		return int(toDecimal(x).IntPart())
	default:
		return 0
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case pgtype.UUID:
		if !x.Valid {
			return ""
		}
		return uuid.UUID(x.Bytes).String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// toTime normaliza a UTC; solo la parte de fecha tiene significado.
func toTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x.UTC()
	case *time.Time:
		if x == nil {
			return time.Time{}
		}
		return x.UTC()
	case pgtype.Date:
		if !x.Valid {
			return time.Time{}
		}
		return x.Time.UTC()
	case pgtype.Timestamptz:
		if !x.Valid {
			return time.Time{}
		}
		return x.Time.UTC()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
