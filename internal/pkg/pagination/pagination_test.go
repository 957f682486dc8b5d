package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/photo-locations/internal/pkg/pagination"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name          string
		page, perPage int
		want          pagination.Params
	}{
		{"defaults", 0, 0, pagination.Params{Page: 1, PerPage: 50}},
		{"keeps valid values", 3, 20, pagination.Params{Page: 3, PerPage: 20}},
		{"caps per page", 1, 500, pagination.Params{Page: 1, PerPage: 100}},
		{"negative page", -2, 10, pagination.Params{Page: 1, PerPage: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.NewParams(tt.page, tt.perPage))
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, pagination.Slice(items, pagination.NewParams(1, 2)))
	assert.Equal(t, []int{5}, pagination.Slice(items, pagination.NewParams(3, 2)))
	assert.Empty(t, pagination.Slice(items, pagination.NewParams(4, 2)))
	assert.Empty(t, pagination.Slice([]int(nil), pagination.NewParams(1, 2)))
}

func TestNewInfo(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		info := pagination.NewInfo(pagination.NewParams(2, 2), 5)
		assert.Equal(t, 3, info.TotalPages)
		assert.True(t, info.HasNext)
		assert.True(t, info.HasPrev)
	})

	t.Run("no items", func(t *testing.T) {
		info := pagination.NewInfo(pagination.NewParams(1, 10), 0)
		assert.Equal(t, 1, info.TotalPages)
		assert.False(t, info.HasNext)
		assert.False(t, info.HasPrev)
	})
}
