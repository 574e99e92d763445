// Package diagnostics derives the numeric grids, series and paths behind
// lifetime-value diagnostic charts. Every transform is a pure function of a
// fitted-model capability, a dataset slice and its parameters; results are
// built fresh per call and never mutated afterwards.
package diagnostics

import (
	"clvplot/domain/customer"
	"clvplot/internal/errors"
	"clvplot/ports"
)

// AutoBound asks a transform to derive a grid bound from the model's
// training data instead of taking it from the caller.
const AutoBound = -1

// Grid is a dense 2-D surface indexed [recencyBucket][frequencyBucket].
// Both axes are integer bucket indices starting at zero.
type Grid [][]float64

// Rows returns the recency-axis size.
func (g Grid) Rows() int { return len(g) }

// Cols returns the frequency-axis size, 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Covariate selects the calibration-period column a holdout comparison is
// bucketed by. TimeSinceLastPurchase is derived per row as T_cal-recency_cal.
type Covariate string

const (
	CovariateFrequency             Covariate = "frequency_cal"
	CovariateRecency               Covariate = "recency_cal"
	CovariateAge                   Covariate = "T_cal"
	CovariateTimeSinceLastPurchase Covariate = "time_since_last_purchase"
)

// CalibrationPoint is one covariate bucket: the mean observed holdout
// purchases of its rows against the mean the model predicted for them.
type CalibrationPoint struct {
	Covariate     float64
	MeanActual    float64
	MeanPredicted float64
}

// Series is a sampled curve: Values[i] = f(Times[i]).
type Series struct {
	Times  []float64
	Values []float64
}

// AlivePath is a probability-alive trace over discretized time buckets from
// a customer's first transaction, plus the bucket indices that contained at
// least one purchase, for overlay markers.
type AlivePath struct {
	Probabilities   []float64
	PurchaseBuckets []int
}

// resolveBounds fills in AutoBound grid bounds from the maximum observed
// frequency and age in the model's training data, truncated to integers.
func resolveBounds(model ports.FittedModel, maxFrequency, maxRecency int) (int, int, error) {
	if maxFrequency >= 0 && maxRecency >= 0 {
		return maxFrequency, maxRecency, nil
	}

	training := model.TrainingData()
	if len(training) == 0 {
		return 0, 0, errors.ConfigInvalid("grid bounds unspecified and model holds no training data to derive them from")
	}
	if maxFrequency < 0 {
		maxFrequency = int(customer.MaxFrequency(training))
	}
	if maxRecency < 0 {
		maxRecency = int(customer.MaxAge(training))
	}
	return maxFrequency, maxRecency, nil
}
