// Package bgnbd implements the fitted-model capability with a
// beta-geometric/NBD purchasing-process model. Parameters come in already
// estimated; no fitting happens here. Purchase rates are Gamma(r, alpha)
// distributed across customers and per-customer dropout probability after
// each purchase is Beta(a, b) distributed, which yields closed forms for
// every prediction the diagnostic transforms need.
package bgnbd

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
)

// Params are externally estimated BG/NBD parameters.
type Params struct {
	R     float64 // shape of the Gamma purchase-rate mixture
	Alpha float64 // rate of the Gamma purchase-rate mixture
	A     float64 // Beta dropout alpha
	B     float64 // Beta dropout beta
}

// Validate rejects parameter sets outside the model's support.
func (p Params) Validate() error {
	if p.R <= 0 || p.Alpha <= 0 || p.A <= 0 || p.B <= 0 {
		return errors.ConfigInvalidf("BG/NBD parameters must all be positive, got r=%g alpha=%g a=%g b=%g",
			p.R, p.Alpha, p.A, p.B)
	}
	return nil
}

// Model is a BG/NBD model handle. It is immutable after construction and
// safe for concurrent reads.
type Model struct {
	params   Params
	training []customer.Summary
	seed     uint64
}

// defaultSimulationAge is the observation window used when sampling without
// training data to borrow customer ages from (weeks, CDNOW-sized).
const defaultSimulationAge = 39.0

// New creates a model from estimated parameters and the training summaries
// the estimation ran on; training may be empty, in which case grid bounds
// cannot be derived from the model and synthetic customers use a default
// observation window.
func New(params Params, training []customer.Summary) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for i, s := range training {
		if s.Recency > s.Age {
			return nil, errors.InvariantViolationf(
				"training row %d has recency %g > age %g", i, s.Recency, s.Age)
		}
	}
	return &Model{params: params, training: training, seed: 1}, nil
}

// WithSeed returns a copy of the model whose synthetic sampling streams are
// seeded deterministically.
func (m *Model) WithSeed(seed uint64) *Model {
	clone := *m
	clone.seed = seed
	return &clone
}

// ExpectedPurchases returns the expected cumulative number of repeat
// purchases by time t since the first transaction.
func (m *Model) ExpectedPurchases(t float64) float64 {
	if t <= 0 {
		return 0
	}
	r, alpha, a, b := m.params.R, m.params.Alpha, m.params.A, m.params.B
	hyp := hyp2f1(r, b, a+b-1, t/(alpha+t))
	return (a + b - 1) / (a - 1) * (1 - math.Pow(alpha/(alpha+t), r)*hyp)
}

// ConditionalExpectedPurchases returns the expected number of purchases in a
// forward window of length t for a customer observed with the given
// frequency x, recency and age.
func (m *Model) ConditionalExpectedPurchases(t, frequency, recency, age float64) float64 {
	if t <= 0 {
		return 0
	}
	r, alpha, a, b := m.params.R, m.params.Alpha, m.params.A, m.params.B
	x := frequency

	hyp := hyp2f1(r+x, b+x, a+b+x-1, t/(alpha+age+t))
	numerator := (a + b + x - 1) / (a - 1) *
		(1 - math.Pow((alpha+age)/(alpha+age+t), r+x)*hyp)

	denominator := 1.0
	if x > 0 {
		denominator += a / (b + x - 1) * math.Pow((alpha+age)/(alpha+recency), r+x)
	}
	return numerator / denominator
}

// ProbabilityAlive returns the probability that a customer observed with the
// given covariates has not dropped out. A customer with no repeats cannot
// have dropped out under BG/NBD, so frequency 0 always yields 1.
func (m *Model) ProbabilityAlive(age, frequency, recency float64) float64 {
	if frequency <= 0 {
		return 1
	}
	r, alpha, a, b := m.params.R, m.params.Alpha, m.params.A, m.params.B
	odds := a / (b + frequency - 1) * math.Pow((alpha+age)/(alpha+recency), r+frequency)
	return 1 / (1 + odds)
}

// ConditionalProbabilityAliveGrid precomputes the probability-alive surface
// over the full (recency, frequency) domain. The age for every cell is the
// grid's maximum recency: a customer observed at the edge of the window.
func (m *Model) ConditionalProbabilityAliveGrid(maxFrequency, maxRecency int) [][]float64 {
	grid := make([][]float64, maxRecency+1)
	age := float64(maxRecency)
	for rec := range grid {
		row := make([]float64, maxFrequency+1)
		for f := range row {
			row[f] = m.ProbabilityAlive(age, float64(f), float64(rec))
		}
		grid[rec] = row
	}
	return grid
}

// SampleCustomers simulates n synthetic customers from the generative
// process: draw a purchase rate from the Gamma mixture and a dropout
// probability from the Beta mixture, then walk exponential inter-purchase
// gaps until dropout or the end of the observation window. Observation
// windows are borrowed from the training data when available.
func (m *Model) SampleCustomers(n int) []customer.Summary {
	src := rand.NewPCG(m.seed, 0)
	gamma := distuv.Gamma{Alpha: m.params.R, Beta: m.params.Alpha, Src: src}
	beta := distuv.Beta{Alpha: m.params.A, Beta: m.params.B, Src: src}
	uniform := rand.New(src)

	out := make([]customer.Summary, n)
	for i := range out {
		age := defaultSimulationAge
		if len(m.training) > 0 {
			age = m.training[i%len(m.training)].Age
		}

		lambda := gamma.Rand()
		dropout := beta.Rand()
		exp := distuv.Exponential{Rate: lambda, Src: src}

		var frequency, recency, elapsed float64
		for {
			elapsed += exp.Rand()
			if elapsed > age {
				break
			}
			frequency++
			recency = elapsed
			if uniform.Float64() < dropout {
				break
			}
		}
		out[i] = customer.Summary{Frequency: frequency, Recency: recency, Age: age}
	}
	return out
}

// TrainingData exposes the summaries the parameters were estimated on.
func (m *Model) TrainingData() []customer.Summary {
	return m.training
}
