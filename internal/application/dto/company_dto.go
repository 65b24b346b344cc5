package dto

import (
	"time"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// CompanyRequest alta o edición de empresa.
type CompanyRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	TaxID    string `json:"tax_id"`
	Address  string `json:"address"`
}

// CompanyResponse salida de empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ToEntity arma la entidad; id vacío significa alta.
func (r CompanyRequest) ToEntity(id string) *entity.Company {
	return &entity.Company{ID: id, Name: r.Name, Nickname: r.Nickname, TaxID: r.TaxID, Address: r.Address}
}

func CompanyFromEntity(c *entity.Company) CompanyResponse {
	return CompanyResponse{ID: c.ID, Name: c.Name, Nickname: c.Nickname, TaxID: c.TaxID, Address: c.Address, CreatedAt: c.CreatedAt}
}

func CompaniesFromEntities(list []*entity.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CompanyFromEntity(c))
	}
	return out
}
