package ports

import (
	"clvplot/domain/customer"
)

// FittedModel is the capability contract a fitted lifetime-value model
// exposes to the diagnostic transforms. Any implementation with these six
// operations can be plotted; parameter estimation happens elsewhere and is
// never triggered from here. Implementations must be side-effect-free and
// safe for concurrent read access, since grid evaluation may fan out across
// goroutines.
type FittedModel interface {
	// ExpectedPurchases returns the expected cumulative number of repeat
	// purchases a customer makes by time t since their first transaction.
	ExpectedPurchases(t float64) float64

	// ConditionalExpectedPurchases returns the expected number of future
	// purchases in a forward window of length t, conditioned on a customer
	// observed with the given frequency, recency and age.
	ConditionalExpectedPurchases(t, frequency, recency, age float64) float64

	// ConditionalProbabilityAliveGrid returns the precomputed
	// probability-alive surface over the full (recency, frequency) domain.
	// The contract is a (maxRecency+1) x (maxFrequency+1) grid with every
	// value in [0,1]; callers validate both.
	ConditionalProbabilityAliveGrid(maxFrequency, maxRecency int) [][]float64

	// ProbabilityAlive returns the probability that a customer with the
	// given observed covariates has not permanently stopped purchasing.
	ProbabilityAlive(age, frequency, recency float64) float64

	// SampleCustomers generates n synthetic customers with the same summary
	// schema as the training data.
	SampleCustomers(n int) []customer.Summary

	// TrainingData exposes the summaries the model was fitted on. An empty
	// slice means the model carries no training data and grid bounds cannot
	// be derived from it.
	TrainingData() []customer.Summary
}
