package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNormalizaLimites(t *testing.T) {
	p := ListParams{Page: -1, PerPage: 0, OrderBy: "sideways"}
	p.Validate()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)

	p = ListParams{Page: 2, PerPage: 500, OrderBy: "ASC"}
	p.Validate()
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 1, PerPage: 20}
	assert.Equal(t, 0, p.CalculateOffset())

	p.Page = 3
	assert.Equal(t, 40, p.CalculateOffset())
}

func TestNewPaginatedResult(t *testing.T) {
	params := ListParams{Page: 2, PerPage: 10}
	resultado := NewPaginatedResult([]int{1, 2, 3}, params, 25)

	assert.Equal(t, 2, resultado.Meta.CurrentPage)
	assert.Equal(t, int64(25), resultado.Meta.TotalItems)
	assert.Equal(t, 3, resultado.Meta.TotalPages)

	vazio := NewPaginatedResult(nil, params, 0)
	assert.Equal(t, 0, vazio.Meta.TotalPages)
}
