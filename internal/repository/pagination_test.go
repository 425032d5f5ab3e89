package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit       int
		wantPage, wantLim int
		wantOffset        int
	}{
		{0, 0, 1, DefaultPageLimit, 0},
		{3, 20, 3, 20, 40},
		{-1, 1000, 1, MaxPageLimit, 0},
		{math.MaxInt, MaxPageLimit, MaxPage, MaxPageLimit, (MaxPage - 1) * MaxPageLimit},
	}
	for _, tt := range tests {
		p := NewPagination(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p.Page)
		assert.Equal(t, tt.wantLim, p.Limit)
		assert.Equal(t, tt.wantOffset, p.Offset())
		assert.GreaterOrEqual(t, p.Offset(), 0)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "cat", escapeLike("cat"))
}
