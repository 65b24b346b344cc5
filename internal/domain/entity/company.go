package entity

import "time"

// Company representa una empresa tomadora de préstamos y consorcios.
// Al eliminarla se eliminan sus préstamos (con sus cuotas) y sus consorcios.
type Company struct {
	ID        string
	Name      string
	Nickname  string // nombre corto usado en listados
	TaxID     string // CNPJ / NIT según el país
	Address   string
	CreatedAt time.Time
}

// DisplayName devuelve el apodo si existe, si no la razón social.
func (c *Company) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Name
}
