package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsNormalize(t *testing.T) {
	p := PageParams{Page: 0, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = PageParams{Page: -3, PageSize: 10}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 5))
	assert.Equal(t, 1, totalPages(1, 5))
	assert.Equal(t, 1, totalPages(5, 5))
	assert.Equal(t, 2, totalPages(6, 5))
	assert.Equal(t, 3, totalPages(12, 5))
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	first := paginate(items, PageParams{Page: 1, PageSize: 5})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, first.Items)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 12, first.Total)

	last := paginate(items, PageParams{Page: 3, PageSize: 5})
	assert.Equal(t, []int{10, 11}, last.Items)

	past := paginate(items, PageParams{Page: 9, PageSize: 5})
	assert.Empty(t, past.Items)
	assert.Equal(t, 9, past.Page)
	assert.Equal(t, 3, past.TotalPages)
}
