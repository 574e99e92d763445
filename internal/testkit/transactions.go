package testkit

import (
	"math/rand/v2"
	"time"

	"clvplot/domain/customer"
)

// TransactionGenerator produces seeded synthetic purchase histories with
// exponentially distributed gaps, the shape real repeat-purchase logs have.
type TransactionGenerator struct {
	rng *rand.Rand
}

// NewTransactionGenerator creates a generator with a fixed seed so fixtures
// reproduce across runs.
func NewTransactionGenerator(seed uint64) *TransactionGenerator {
	return &TransactionGenerator{rng: rand.New(rand.NewPCG(seed, 0))}
}

// History generates n ascending purchase timestamps for one customer,
// starting at start, with a mean gap of meanGap between purchases.
func (g *TransactionGenerator) History(customerID string, start time.Time, n int, meanGap time.Duration) []customer.TransactionEvent {
	events := make([]customer.TransactionEvent, 0, n)
	ts := start
	for i := 0; i < n; i++ {
		events = append(events, customer.TransactionEvent{
			CustomerID:  customerID,
			PurchasedAt: ts,
		})
		gap := time.Duration(g.rng.ExpFloat64() * float64(meanGap))
		ts = ts.Add(gap)
	}
	return events
}

// Timestamps is History stripped to the raw timestamp series the alive-path
// reconstructor consumes.
func (g *TransactionGenerator) Timestamps(start time.Time, n int, meanGap time.Duration) []time.Time {
	events := g.History("synthetic", start, n, meanGap)
	out := make([]time.Time, len(events))
	for i, e := range events {
		out[i] = e.PurchasedAt
	}
	return out
}
