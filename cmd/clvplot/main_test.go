package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticHistory(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	first := syntheticHistory(1, start, 8, 10*24*time.Hour)
	require.Len(t, first, 8)
	assert.Equal(t, start, first[0])
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].Before(first[i-1]), "timestamps must be ascending at %d", i)
	}

	second := syntheticHistory(1, start, 8, 10*24*time.Hour)
	assert.Equal(t, first, second)
}
