package ports

import (
	"context"
	"time"
)

// SimulationCache caché clave/valor de resultados de simulación ya serializados.
// Un fallo del caché nunca debe impedir calcular: los adaptadores devuelven
// (nil, false) ante cualquier error de lectura.
type SimulationCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
