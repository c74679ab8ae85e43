package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name   string
		params Params
		want   Page[int]
	}{
		{
			name:   "everything",
			params: Params{Page: 1},
			want:   Page[int]{Items: items, Meta: Meta{Page: 1, TotalItems: 5, TotalPages: 1}},
		},
		{
			name:   "first page",
			params: Params{Page: 1, PageSize: 2},
			want:   Page[int]{Items: []int{1, 2}, Meta: Meta{Page: 1, PageSize: 2, TotalItems: 5, TotalPages: 3}},
		},
		{
			name:   "last partial page",
			params: Params{Page: 3, PageSize: 2},
			want:   Page[int]{Items: []int{5}, Meta: Meta{Page: 3, PageSize: 2, TotalItems: 5, TotalPages: 3}},
		},
		{
			name:   "past the end",
			params: Params{Page: 4, PageSize: 2},
			want:   Page[int]{Items: []int{}, Meta: Meta{Page: 4, PageSize: 2, TotalItems: 5, TotalPages: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(items, tt.params))
		})
	}
}

func TestApply_Nil(t *testing.T) {
	got := Apply[string](nil, Params{Page: 1})
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Meta.TotalPages)
}
