package diagnostics

import (
	"gonum.org/v1/gonum/floats"

	"clvplot/internal/errors"
	"clvplot/ports"
)

// curvePoints is the sampling density of each repeat-purchase series.
const curvePoints = 100

// RepeatPurchaseCurve samples the model's expected cumulative repeat
// purchases over two linear ranges: the observed range [0, maxObservedAge]
// and an extrapolated range [maxObservedAge, 1.5*maxObservedAge]. The second
// series is meant to be drawn in a visually distinct style to flag that it
// runs beyond observed data. A non-positive maxObservedAge is a degenerate
// range and fails with a CONFIG_INVALID error.
func RepeatPurchaseCurve(model ports.FittedModel, maxObservedAge float64) (observed, extrapolated Series, err error) {
	if maxObservedAge <= 0 {
		return Series{}, Series{}, errors.ConfigInvalidf(
			"max observed age must be positive, got %g", maxObservedAge)
	}
	observed = sampleExpectedPurchases(model, 0, maxObservedAge)
	extrapolated = sampleExpectedPurchases(model, maxObservedAge, 1.5*maxObservedAge)
	return observed, extrapolated, nil
}

func sampleExpectedPurchases(model ports.FittedModel, from, to float64) Series {
	times := floats.Span(make([]float64, curvePoints), from, to)
	values := make([]float64, curvePoints)
	for i, t := range times {
		values[i] = model.ExpectedPurchases(t)
	}
	return Series{Times: times, Values: values}
}
