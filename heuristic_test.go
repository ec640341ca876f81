package texpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicNames(t *testing.T) {
	tests := []struct {
		heuristic Heuristic
		name      string
	}{
		{BestShortSideFit, "BSSF"},
		{BestLongSideFit, "BLSF"},
		{BestAreaFit, "BAF"},
		{BottomLeft, "BL"},
		{ContactPoint, "CP"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.heuristic.String())
		assert.NoError(t, tt.heuristic.Validate())

		parsed, err := ParseHeuristic(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.heuristic, parsed)
	}

	parsed, err := ParseHeuristic("baf")
	require.NoError(t, err)
	assert.Equal(t, BestAreaFit, parsed)
}

func TestHeuristicInvalid(t *testing.T) {
	h := Heuristic(heuristicCount)
	assert.Error(t, h.Validate())
	assert.Equal(t, "Heuristic(5)", h.String())

	_, err := ParseHeuristic("guillotine")
	assert.Error(t, err)
}

func TestHeuristicOrder(t *testing.T) {
	for i, h := range Heuristics {
		assert.Equal(t, Heuristic(i), h)
	}
}

// vim: ts=4
