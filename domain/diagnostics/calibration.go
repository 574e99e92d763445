package diagnostics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
	"clvplot/ports"
)

// AggregateByCovariate buckets a calibration/holdout dataset by the exact
// value of the chosen covariate and compares, per bucket, the mean observed
// holdout purchases with the mean the model predicts for the holdout window.
// Grouping is a plain partition keyed by the raw covariate value, not a
// binned histogram. Buckets come back sorted by covariate ascending,
// truncated to the first topN (topN <= 0 keeps all buckets).
//
// The holdout window length is a dataset-wide scalar; rows disagreeing on
// DurationHoldout fail with an INVARIANT_VIOLATION error. A bucket with a
// single row is valid: its means are the row's own values.
func AggregateByCovariate(model ports.FittedModel, rows []customer.CalibrationHoldoutRow, covariate Covariate, topN int) ([]CalibrationPoint, error) {
	if len(rows) == 0 {
		return nil, errors.ConfigInvalid("calibration/holdout dataset is empty")
	}

	duration := rows[0].DurationHoldout
	for i, row := range rows {
		if row.DurationHoldout != duration {
			return nil, errors.InvariantViolationf(
				"duration_holdout differs across rows: row 0 has %g, row %d has %g",
				duration, i, row.DurationHoldout)
		}
	}

	type bucket struct {
		actual    []float64
		predicted []float64
	}
	buckets := make(map[float64]*bucket)

	for _, row := range rows {
		var value float64
		switch covariate {
		case CovariateFrequency:
			value = row.FrequencyCal
		case CovariateRecency:
			value = row.RecencyCal
		case CovariateAge:
			value = row.AgeCal
		case CovariateTimeSinceLastPurchase:
			value = row.AgeCal - row.RecencyCal
		default:
			return nil, errors.ConfigInvalidf("unknown covariate %q", covariate)
		}

		predicted := model.ConditionalExpectedPurchases(duration, row.FrequencyCal, row.RecencyCal, row.AgeCal)

		b, ok := buckets[value]
		if !ok {
			b = &bucket{}
			buckets[value] = b
		}
		b.actual = append(b.actual, row.FrequencyHoldout)
		b.predicted = append(b.predicted, predicted)
	}

	values := make([]float64, 0, len(buckets))
	for v := range buckets {
		values = append(values, v)
	}
	sort.Float64s(values)

	if topN > 0 && topN < len(values) {
		values = values[:topN]
	}

	points := make([]CalibrationPoint, 0, len(values))
	for _, v := range values {
		b := buckets[v]
		meanActual, err := stats.Mean(b.actual)
		if err != nil {
			return nil, errors.Wrapf(err, "mean actual purchases for covariate %g", v)
		}
		meanPredicted, err := stats.Mean(b.predicted)
		if err != nil {
			return nil, errors.Wrapf(err, "mean predicted purchases for covariate %g", v)
		}
		points = append(points, CalibrationPoint{
			Covariate:     v,
			MeanActual:    meanActual,
			MeanPredicted: meanPredicted,
		})
	}
	return points, nil
}
