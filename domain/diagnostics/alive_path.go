package diagnostics

import (
	"time"

	"clvplot/internal/errors"
	"clvplot/ports"
)

// ReconstructAlivePath turns an irregular purchase history into a
// probability-alive trace over time buckets of width unit, starting at the
// first transaction. At each bucket boundary k the customer's covariates are
// recomputed from what was observable by then: frequency is the count of
// distinct purchase buckets so far minus one (the founding transaction is
// not a repeat), recency is the latest purchase bucket so far, and age is k
// itself. The model is evaluated as-is; the trace is neither clamped nor
// smoothed, so any misbehavior of the survival function stays visible.
//
// The returned path has units+1 entries, or more when the history spans
// further than units buckets. Timestamps must be ascending; out-of-order
// input fails with an INVARIANT_VIOLATION error.
func ReconstructAlivePath(model ports.FittedModel, timestamps []time.Time, unit time.Duration, units int) (AlivePath, error) {
	if len(timestamps) == 0 {
		return AlivePath{}, errors.ConfigInvalid("alive path requires at least one transaction")
	}
	if unit <= 0 {
		return AlivePath{}, errors.ConfigInvalidf("time unit must be positive, got %s", unit)
	}
	if units < 0 {
		return AlivePath{}, errors.ConfigInvalidf("units must be non-negative, got %d", units)
	}
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i].Before(timestamps[i-1]) {
			return AlivePath{}, errors.InvariantViolationf(
				"transaction timestamps out of order at index %d", i)
		}
	}

	first := timestamps[0]
	lastBucket := int(timestamps[len(timestamps)-1].Sub(first) / unit)

	n := units + 1
	if lastBucket+1 > n {
		n = lastBucket + 1
	}

	purchased := make([]bool, n)
	for _, ts := range timestamps {
		purchased[int(ts.Sub(first)/unit)] = true
	}

	path := AlivePath{Probabilities: make([]float64, n)}
	distinctBuckets := 0
	recency := 0.0
	for k := 0; k < n; k++ {
		if purchased[k] {
			distinctBuckets++
			recency = float64(k)
			path.PurchaseBuckets = append(path.PurchaseBuckets, k)
		}
		frequency := float64(distinctBuckets - 1)
		path.Probabilities[k] = model.ProbabilityAlive(float64(k), frequency, recency)
	}
	return path, nil
}

// PurchaseDates maps the path's purchase buckets back onto the timeline for
// overlay markers, given the first transaction time and the bucket width.
func (p AlivePath) PurchaseDates(first time.Time, unit time.Duration) []time.Time {
	dates := make([]time.Time, len(p.PurchaseBuckets))
	for i, b := range p.PurchaseBuckets {
		dates[i] = first.Add(time.Duration(b) * unit)
	}
	return dates
}
