// Package testkit provides deterministic fixtures for exercising the
// diagnostic transforms: a fake fitted model with hand-computable closed
// forms and a seeded synthetic transaction generator.
package testkit

import (
	"math"
	"math/rand/v2"

	"clvplot/domain/customer"
)

// FakeModel implements the fitted-model capability with cheap deterministic
// closed forms, so tests can verify transform mechanics against values they
// can compute by hand. Individual operations can be overridden per test via
// the *Fn hooks.
type FakeModel struct {
	Training []customer.Summary

	ExpectedFn    func(t float64) float64
	ConditionalFn func(t, frequency, recency, age float64) float64
	AliveGridFn   func(maxFrequency, maxRecency int) [][]float64
	AliveFn       func(age, frequency, recency float64) float64
	SampleFn      func(n int) []customer.Summary
}

// NewFakeModel returns a fake model carrying the given training data.
func NewFakeModel(training ...customer.Summary) *FakeModel {
	return &FakeModel{Training: training}
}

func (m *FakeModel) ExpectedPurchases(t float64) float64 {
	if m.ExpectedFn != nil {
		return m.ExpectedFn(t)
	}
	return t / 10.0
}

// ConditionalExpectedPurchases encodes each argument in a separate decimal
// range so a test can recover exactly which arguments a transform passed.
func (m *FakeModel) ConditionalExpectedPurchases(t, frequency, recency, age float64) float64 {
	if m.ConditionalFn != nil {
		return m.ConditionalFn(t, frequency, recency, age)
	}
	return t + 1000*frequency + 10*recency + age/1000.0
}

func (m *FakeModel) ConditionalProbabilityAliveGrid(maxFrequency, maxRecency int) [][]float64 {
	if m.AliveGridFn != nil {
		return m.AliveGridFn(maxFrequency, maxRecency)
	}
	grid := make([][]float64, maxRecency+1)
	for r := range grid {
		grid[r] = make([]float64, maxFrequency+1)
		for f := range grid[r] {
			grid[r][f] = m.ProbabilityAlive(float64(maxRecency), float64(f), float64(r))
		}
	}
	return grid
}

// ProbabilityAlive decays exponentially in the time since the last purchase,
// slower for frequent buyers. It is non-increasing between purchases, the
// property a well-behaved survival function must show.
func (m *FakeModel) ProbabilityAlive(age, frequency, recency float64) float64 {
	if m.AliveFn != nil {
		return m.AliveFn(age, frequency, recency)
	}
	if frequency < 0 {
		frequency = 0
	}
	return math.Exp(-0.3 * (age - recency) / (frequency + 1))
}

func (m *FakeModel) SampleCustomers(n int) []customer.Summary {
	if m.SampleFn != nil {
		return m.SampleFn(n)
	}
	rng := rand.New(rand.NewPCG(42, 0))
	out := make([]customer.Summary, n)
	for i := range out {
		age := 10 + rng.Float64()*30
		recency := rng.Float64() * age
		out[i] = customer.Summary{
			Frequency: float64(rng.IntN(8)),
			Recency:   recency,
			Age:       age,
		}
	}
	return out
}

func (m *FakeModel) TrainingData() []customer.Summary {
	return m.Training
}
