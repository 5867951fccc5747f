// Package queryparams define os parâmetros de listagem/paginação
// compartilhados entre handlers e repositórios.
package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams são os parâmetros de listagem vindos da query string.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
}

// DefaultListParams devolve parâmetros padrão ordenando pela coluna dada.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate normaliza valores fora dos limites aceitos.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	orderBy := strings.ToLower(p.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	} else {
		p.OrderBy = orderBy
	}
}

// CalculateOffset devolve o deslocamento da página atual.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta descreve a página retornada.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult embala os dados de uma página com seus metadados.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResult monta o resultado calculando o total de páginas.
func NewPaginatedResult(data interface{}, params ListParams, total int64) *PaginatedResult {
	totalPages := 0
	if params.PerPage > 0 {
		totalPages = int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	}
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	}
}
