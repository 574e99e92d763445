package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
	"clvplot/internal/testkit"
)

func TestAliveGrid_PassesThroughValidGrid(t *testing.T) {
	model := testkit.NewFakeModel()

	grid, err := AliveGrid(model, 5, 8)
	require.NoError(t, err)

	require.Equal(t, 9, grid.Rows())
	require.Equal(t, 6, grid.Cols())
	want := model.ConditionalProbabilityAliveGrid(5, 8)
	assert.Equal(t, Grid(want), grid)

	for r := range grid {
		for f, v := range grid[r] {
			assert.GreaterOrEqual(t, v, 0.0, "cell [%d][%d]", r, f)
			assert.LessOrEqual(t, v, 1.0, "cell [%d][%d]", r, f)
		}
	}
}

func TestAliveGrid_BoundsDerivedFromTrainingData(t *testing.T) {
	model := testkit.NewFakeModel(
		customer.Summary{Frequency: 2, Recency: 3, Age: 6},
	)

	grid, err := AliveGrid(model, AutoBound, AutoBound)
	require.NoError(t, err)
	assert.Equal(t, 7, grid.Rows())
	assert.Equal(t, 3, grid.Cols())
}

func TestAliveGrid_WrongRowCount(t *testing.T) {
	model := testkit.NewFakeModel()
	model.AliveGridFn = func(maxF, maxR int) [][]float64 {
		return make([][]float64, maxR) // one row short
	}

	_, err := AliveGrid(model, 2, 4)
	require.Error(t, err)
	assert.True(t, errors.IsInvariantViolation(err))
}

func TestAliveGrid_WrongColumnCount(t *testing.T) {
	model := testkit.NewFakeModel()
	model.AliveGridFn = func(maxF, maxR int) [][]float64 {
		grid := make([][]float64, maxR+1)
		for r := range grid {
			grid[r] = make([]float64, maxF) // one column short
		}
		return grid
	}

	_, err := AliveGrid(model, 2, 4)
	require.Error(t, err)
	assert.True(t, errors.IsInvariantViolation(err))
}

func TestAliveGrid_OutOfRangeProbability(t *testing.T) {
	model := testkit.NewFakeModel()
	model.AliveGridFn = func(maxF, maxR int) [][]float64 {
		grid := make([][]float64, maxR+1)
		for r := range grid {
			grid[r] = make([]float64, maxF+1)
		}
		grid[1][1] = 1.2
		return grid
	}

	_, err := AliveGrid(model, 2, 4)
	require.Error(t, err)
	assert.True(t, errors.IsInvariantViolation(err))
}

func TestAliveGrid_NoTrainingDataFails(t *testing.T) {
	model := testkit.NewFakeModel()

	_, err := AliveGrid(model, AutoBound, AutoBound)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}
