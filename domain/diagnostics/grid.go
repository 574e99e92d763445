package diagnostics

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"clvplot/ports"
)

// EvaluateGrid fills a (maxRecency+1) x (maxFrequency+1) surface of expected
// future purchases over the prediction window horizon. Cell [r][f] holds the
// model's conditional expectation for a customer observed with frequency f
// and recency r. Pass AutoBound for either bound to derive it from the
// model's training data; with no training data that fails with a
// CONFIG_INVALID error.
//
// The age argument passed to the model is pinned to maxRecency for every
// cell: the surface describes a customer observed at the edge of the window.
// That keeps the grid 2-D and is a known approximation; callers needing
// per-age accuracy must add the third dimension themselves.
//
// Rows are evaluated concurrently, which requires the model's prediction to
// be safe for concurrent reads. Each cell is evaluated exactly once.
func EvaluateGrid(model ports.FittedModel, horizon float64, maxFrequency, maxRecency int) (Grid, error) {
	maxFrequency, maxRecency, err := resolveBounds(model, maxFrequency, maxRecency)
	if err != nil {
		return nil, err
	}

	grid := make(Grid, maxRecency+1)
	age := float64(maxRecency)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r <= maxRecency; r++ {
		eg.Go(func() error {
			row := make([]float64, maxFrequency+1)
			for f := 0; f <= maxFrequency; f++ {
				row[f] = model.ConditionalExpectedPurchases(horizon, float64(f), float64(r), age)
			}
			grid[r] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return grid, nil
}
