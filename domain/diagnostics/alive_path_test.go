package diagnostics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clvplot/internal/errors"
	"clvplot/internal/testkit"
)

var pathStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func TestReconstructAlivePath_SingleTransaction(t *testing.T) {
	model := testkit.NewFakeModel()

	path, err := ReconstructAlivePath(model, []time.Time{pathStart}, day, 5)
	require.NoError(t, err)

	require.Len(t, path.Probabilities, 6)
	assert.Equal(t, []int{0}, path.PurchaseBuckets)

	// The first value reflects frequency=0: the founding transaction is not
	// a repeat.
	assert.Equal(t, model.ProbabilityAlive(0, 0, 0), path.Probabilities[0])
	for k := 1; k < 6; k++ {
		assert.Equal(t, model.ProbabilityAlive(float64(k), 0, 0), path.Probabilities[k])
	}
}

func TestReconstructAlivePath_CovariatesPerBucket(t *testing.T) {
	type call struct{ age, frequency, recency float64 }
	var calls []call
	model := testkit.NewFakeModel()
	model.AliveFn = func(age, frequency, recency float64) float64 {
		calls = append(calls, call{age, frequency, recency})
		return 0.5
	}

	timestamps := []time.Time{
		pathStart,
		pathStart.Add(2 * day),
		pathStart.Add(2*day + time.Hour), // same bucket as the previous one
	}
	_, err := ReconstructAlivePath(model, timestamps, day, 4)
	require.NoError(t, err)

	want := []call{
		{0, 0, 0}, // founding purchase, no repeats yet
		{1, 0, 0},
		{2, 1, 2}, // second purchase bucket: one repeat, recency moves to 2
		{3, 1, 2},
		{4, 1, 2},
	}
	assert.Equal(t, want, calls)
}

func TestReconstructAlivePath_NonIncreasingBetweenPurchases(t *testing.T) {
	model := testkit.NewFakeModel()
	gen := testkit.NewTransactionGenerator(7)
	timestamps := gen.Timestamps(pathStart, 6, 9*day)

	path, err := ReconstructAlivePath(model, timestamps, day, 120)
	require.NoError(t, err)

	purchased := make(map[int]bool, len(path.PurchaseBuckets))
	for _, b := range path.PurchaseBuckets {
		purchased[b] = true
	}
	for k := 1; k < len(path.Probabilities); k++ {
		if purchased[k] {
			continue // a purchase may push the probability back up
		}
		assert.LessOrEqual(t, path.Probabilities[k], path.Probabilities[k-1],
			"path increased without a purchase at bucket %d", k)
	}
}

func TestReconstructAlivePath_ExtendsBeyondUnits(t *testing.T) {
	model := testkit.NewFakeModel()

	timestamps := []time.Time{pathStart, pathStart.Add(10 * day)}
	path, err := ReconstructAlivePath(model, timestamps, day, 5)
	require.NoError(t, err)

	// The history spans 11 buckets, more than units+1=6.
	assert.Len(t, path.Probabilities, 11)
	assert.Equal(t, []int{0, 10}, path.PurchaseBuckets)
}

func TestReconstructAlivePath_PurchaseDates(t *testing.T) {
	model := testkit.NewFakeModel()

	timestamps := []time.Time{pathStart, pathStart.Add(3 * day)}
	path, err := ReconstructAlivePath(model, timestamps, day, 5)
	require.NoError(t, err)

	dates := path.PurchaseDates(pathStart, day)
	require.Len(t, dates, 2)
	assert.Equal(t, pathStart, dates[0])
	assert.Equal(t, pathStart.Add(3*day), dates[1])
}

func TestReconstructAlivePath_InputValidation(t *testing.T) {
	model := testkit.NewFakeModel()

	_, err := ReconstructAlivePath(model, nil, day, 5)
	assert.True(t, errors.IsConfigInvalid(err))

	_, err = ReconstructAlivePath(model, []time.Time{pathStart}, 0, 5)
	assert.True(t, errors.IsConfigInvalid(err))

	_, err = ReconstructAlivePath(model, []time.Time{pathStart}, day, -1)
	assert.True(t, errors.IsConfigInvalid(err))

	outOfOrder := []time.Time{pathStart.Add(day), pathStart}
	_, err = ReconstructAlivePath(model, outOfOrder, day, 5)
	assert.True(t, errors.IsInvariantViolation(err))
}
