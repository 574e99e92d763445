package diagnostics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
	"clvplot/internal/testkit"
)

func TestEvaluateGrid_ShapeAndCellValues(t *testing.T) {
	model := testkit.NewFakeModel()
	horizon := 7.0

	grid, err := EvaluateGrid(model, horizon, 4, 9)
	require.NoError(t, err)

	require.Equal(t, 10, grid.Rows())
	require.Equal(t, 5, grid.Cols())

	// Every cell must equal a direct model call with age pinned to the
	// grid's maximum recency.
	for r := 0; r <= 9; r++ {
		for f := 0; f <= 4; f++ {
			want := model.ConditionalExpectedPurchases(horizon, float64(f), float64(r), 9)
			assert.Equal(t, want, grid[r][f], "cell [%d][%d]", r, f)
		}
	}
}

func TestEvaluateGrid_Deterministic(t *testing.T) {
	model := testkit.NewFakeModel()

	first, err := EvaluateGrid(model, 3, 6, 12)
	require.NoError(t, err)
	second, err := EvaluateGrid(model, 3, 6, 12)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateGrid_BoundsDerivedFromTrainingData(t *testing.T) {
	// Three customers with frequency [0,2,5] and T [10,20,30] must yield a
	// (31,6) grid when no bounds are supplied.
	model := testkit.NewFakeModel(
		customer.Summary{Frequency: 0, Recency: 0, Age: 10},
		customer.Summary{Frequency: 2, Recency: 15, Age: 20},
		customer.Summary{Frequency: 5, Recency: 28, Age: 30},
	)

	grid, err := EvaluateGrid(model, 1, AutoBound, AutoBound)
	require.NoError(t, err)

	assert.Equal(t, 31, grid.Rows())
	assert.Equal(t, 6, grid.Cols())
}

func TestEvaluateGrid_PartialBoundsStillDerive(t *testing.T) {
	model := testkit.NewFakeModel(
		customer.Summary{Frequency: 3, Recency: 4, Age: 8},
	)

	grid, err := EvaluateGrid(model, 1, 2, AutoBound)
	require.NoError(t, err)

	assert.Equal(t, 9, grid.Rows())
	assert.Equal(t, 3, grid.Cols())
}

func TestEvaluateGrid_NoTrainingDataFails(t *testing.T) {
	model := testkit.NewFakeModel() // no training data

	_, err := EvaluateGrid(model, 1, AutoBound, AutoBound)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestEvaluateGrid_EachCellEvaluatedOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	model := testkit.NewFakeModel()
	model.ConditionalFn = func(t, f, r, age float64) float64 {
		// Rows run concurrently.
		mu.Lock()
		calls++
		mu.Unlock()
		return 0
	}

	_, err := EvaluateGrid(model, 1, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, (4+1)*(3+1), calls) // (maxRecency+1)*(maxFrequency+1)
}
