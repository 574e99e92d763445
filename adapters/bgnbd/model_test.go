package bgnbd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
)

// CDNOW-style parameter estimates, the customary BG/NBD reference point.
var cdnowParams = Params{R: 0.243, Alpha: 4.414, A: 0.793, B: 2.426}

func newTestModel(t *testing.T, training ...customer.Summary) *Model {
	t.Helper()
	model, err := New(cdnowParams, training)
	require.NoError(t, err)
	return model.WithSeed(42)
}

func TestHyp2f1_KnownIdentity(t *testing.T) {
	// 2F1(1, 1; 2; z) = -ln(1-z)/z
	for _, z := range []float64{0.1, 0.3, 0.5, 0.8, 0.95} {
		want := -math.Log(1-z) / z
		assert.InDelta(t, want, hyp2f1(1, 1, 2, z), 1e-9, "z=%g", z)
	}
}

func TestHyp2f1_AtZero(t *testing.T) {
	assert.Equal(t, 1.0, hyp2f1(0.5, 2.4, 1.6, 0))
}

func TestExpectedPurchases(t *testing.T) {
	model := newTestModel(t)

	assert.Equal(t, 0.0, model.ExpectedPurchases(0))

	// Strictly increasing in t.
	prev := 0.0
	for _, horizon := range []float64{1, 5, 10, 39, 78} {
		got := model.ExpectedPurchases(horizon)
		assert.Greater(t, got, prev, "t=%g", horizon)
		prev = got
	}
}

func TestConditionalExpectedPurchases(t *testing.T) {
	model := newTestModel(t)

	// Zero forward window means zero expected purchases.
	assert.Equal(t, 0.0, model.ConditionalExpectedPurchases(0, 2, 30, 38))

	// Increasing in the forward window.
	short := model.ConditionalExpectedPurchases(10, 2, 30, 38)
	long := model.ConditionalExpectedPurchases(40, 2, 30, 38)
	assert.Greater(t, long, short)
	assert.Greater(t, short, 0.0)

	// A long-lapsed customer is worth less than a recently active one with
	// the same frequency and age.
	lapsed := model.ConditionalExpectedPurchases(10, 2, 5, 38)
	active := model.ConditionalExpectedPurchases(10, 2, 36, 38)
	assert.Greater(t, active, lapsed)
}

func TestProbabilityAlive(t *testing.T) {
	model := newTestModel(t)

	// No repeats means no observable dropout.
	assert.Equal(t, 1.0, model.ProbabilityAlive(30, 0, 0))

	// Always a probability.
	for _, c := range []struct{ age, freq, rec float64 }{
		{10, 1, 1}, {38, 5, 30}, {38, 2, 2}, {100, 10, 99},
	} {
		p := model.ProbabilityAlive(c.age, c.freq, c.rec)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}

	// Decaying as the silence since the last purchase grows.
	recent := model.ProbabilityAlive(20, 3, 18)
	silent := model.ProbabilityAlive(40, 3, 18)
	assert.Greater(t, recent, silent)
}

func TestConditionalProbabilityAliveGrid(t *testing.T) {
	model := newTestModel(t)

	grid := model.ConditionalProbabilityAliveGrid(5, 8)
	require.Len(t, grid, 9)
	for rec, row := range grid {
		require.Len(t, row, 6)
		for f, v := range row {
			assert.GreaterOrEqual(t, v, 0.0, "cell [%d][%d]", rec, f)
			assert.LessOrEqual(t, v, 1.0, "cell [%d][%d]", rec, f)
			want := model.ProbabilityAlive(8, float64(f), float64(rec))
			assert.Equal(t, want, v)
		}
	}
}

func TestSampleCustomers(t *testing.T) {
	model := newTestModel(t,
		customer.Summary{Frequency: 2, Recency: 30, Age: 38},
		customer.Summary{Frequency: 0, Recency: 0, Age: 20},
	)

	samples := model.SampleCustomers(200)
	require.Len(t, samples, 200)
	for i, s := range samples {
		assert.GreaterOrEqual(t, s.Frequency, 0.0, "sample %d", i)
		assert.LessOrEqual(t, s.Recency, s.Age, "sample %d: recency must not exceed age", i)
	}

	// Ages are borrowed from the training data.
	assert.Equal(t, 38.0, samples[0].Age)
	assert.Equal(t, 20.0, samples[1].Age)

	// Same seed, same stream.
	again := model.SampleCustomers(200)
	assert.Equal(t, samples, again)

	// Different seed, different stream.
	other := model.WithSeed(7).SampleCustomers(200)
	assert.NotEqual(t, samples, other)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Params{R: -1, Alpha: 4, A: 1, B: 2}, nil)
	assert.True(t, errors.IsConfigInvalid(err))

	_, err = New(cdnowParams, []customer.Summary{{Frequency: 1, Recency: 9, Age: 5}})
	assert.True(t, errors.IsInvariantViolation(err))
}
