package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		perPage  int
		page     int
		lastPage int
	}{
		{name: "partialLastPage", total: 45, perPage: 20, page: 1, lastPage: 3},
		{name: "exactPages", total: 40, perPage: 20, page: 2, lastPage: 2},
		{name: "singlePage", total: 5, perPage: 20, page: 1, lastPage: 1},
		{name: "empty", total: 0, perPage: 20, page: 1, lastPage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.perPage, tt.page)

			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.lastPage, p.LastPage)
		})
	}
}
