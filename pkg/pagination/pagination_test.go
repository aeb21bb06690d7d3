package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		params    Params
		expected  []int
		pages     int
		hasNext   bool
		hasPrev   bool
		perPageIs int
	}{
		{"whole listing", Params{}, items, 1, false, false, 7},
		{"first page", Params{Page: 1, PerPage: 3}, []int{1, 2, 3}, 3, true, false, 3},
		{"last partial page", Params{Page: 3, PerPage: 3}, []int{7}, 3, false, true, 3},
		{"past the end", Params{Page: 9, PerPage: 3}, []int{}, 3, false, true, 3},
		{"page below one", Params{Page: -2, PerPage: 5}, []int{1, 2, 3, 4, 5}, 2, true, false, 5},
		{"largest page number", Params{Page: math.MaxInt, PerPage: 2}, []int{}, 4, false, true, 2},
		{"per page clamped", Params{Page: 1, PerPage: 500}, items, 1, false, false, MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slice(items, tt.params)
			page := result.Pagination
			assert.Equal(t, tt.expected, result.Items)
			assert.Equal(t, 7, page.Total)
			assert.Equal(t, tt.pages, page.TotalPages)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.Equal(t, tt.hasPrev, page.HasPrev)
			assert.Equal(t, tt.perPageIs, page.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PerPage: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
	assert.Equal(t, math.MaxInt, Params{Page: math.MaxInt, PerPage: 2}.Offset())
}
