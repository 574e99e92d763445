package diagnostics

import (
	"clvplot/internal/errors"
	"clvplot/ports"
)

// AliveGrid requests the model's precomputed probability-alive surface after
// applying the same bound-defaulting rule as EvaluateGrid, then validates
// the result against the grid contract: shape (maxRecency+1) x
// (maxFrequency+1) and every value within [0,1]. Contract breaches fail with
// an INVARIANT_VIOLATION error; the grid itself passes through untouched.
func AliveGrid(model ports.FittedModel, maxFrequency, maxRecency int) (Grid, error) {
	maxFrequency, maxRecency, err := resolveBounds(model, maxFrequency, maxRecency)
	if err != nil {
		return nil, err
	}

	raw := model.ConditionalProbabilityAliveGrid(maxFrequency, maxRecency)

	wantRows, wantCols := maxRecency+1, maxFrequency+1
	if len(raw) != wantRows {
		return nil, errors.InvariantViolationf(
			"probability-alive grid has %d rows, want %d", len(raw), wantRows)
	}
	for r, row := range raw {
		if len(row) != wantCols {
			return nil, errors.InvariantViolationf(
				"probability-alive grid row %d has %d columns, want %d", r, len(row), wantCols)
		}
		for f, v := range row {
			if v < 0 || v > 1 {
				return nil, errors.InvariantViolationf(
					"probability-alive grid cell [%d][%d] = %g outside [0,1]", r, f, v)
			}
		}
	}
	return Grid(raw), nil
}
