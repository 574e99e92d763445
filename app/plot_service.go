// Package app wires the diagnostic transforms to a renderer, carrying the
// chart titles, axis labels and styling each diagnostic is conventionally
// drawn with.
package app

import (
	"fmt"
	"strconv"
	"time"

	"clvplot/domain/customer"
	"clvplot/domain/diagnostics"
	"clvplot/internal"
	"clvplot/internal/errors"
	"clvplot/ports"
)

// covariateLabels maps each calibration covariate to its x-axis label.
var covariateLabels = map[diagnostics.Covariate]string{
	diagnostics.CovariateFrequency:             "Purchases in calibration period",
	diagnostics.CovariateRecency:               "Age of customer at last purchase",
	diagnostics.CovariateAge:                   "Age of customer at the end of calibration period",
	diagnostics.CovariateTimeSinceLastPurchase: "Time since user made last purchase",
}

// PlotService renders the full diagnostic chart set for one fitted model.
type PlotService struct {
	model    ports.FittedModel
	renderer ports.Renderer
	log      *internal.Logger
}

// NewPlotService creates a plot service.
func NewPlotService(model ports.FittedModel, renderer ports.Renderer, log *internal.Logger) *PlotService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &PlotService{model: model, renderer: renderer, log: log}
}

// FrequencyRecencyMatrix renders the expected-purchases heatmap over the
// (recency, frequency) domain for a prediction window of length horizon.
// Pass diagnostics.AutoBound to derive either bound from training data.
func (s *PlotService) FrequencyRecencyMatrix(horizon float64, maxFrequency, maxRecency int) error {
	grid, err := diagnostics.EvaluateGrid(s.model, horizon, maxFrequency, maxRecency)
	if err != nil {
		return err
	}
	s.log.Debug("frequency/recency matrix evaluated: %dx%d cells", grid.Rows(), grid.Cols())

	plural := "s"
	if horizon == 1 {
		plural = ""
	}
	return s.renderer.Heatmap(grid, ports.ChartSpec{
		Title: fmt.Sprintf(
			"Expected Number of Future Purchases for %g Unit%s of Time, by Frequency and Recency of a Customer",
			horizon, plural),
		XLabel:        "Customer's Historical Frequency",
		YLabel:        "Customer's Recency",
		Interpolation: "none",
		SquareAspect:  true,
	})
}

// ProbabilityAliveMatrix renders the probability-alive heatmap.
func (s *PlotService) ProbabilityAliveMatrix(maxFrequency, maxRecency int) error {
	grid, err := diagnostics.AliveGrid(s.model, maxFrequency, maxRecency)
	if err != nil {
		return err
	}
	return s.renderer.Heatmap(grid, ports.ChartSpec{
		Title:         "Probability Customer is Alive, by Frequency and Recency of a Customer",
		XLabel:        "Customer's Historical Frequency",
		YLabel:        "Customer's Recency",
		Interpolation: "none",
		SquareAspect:  true,
	})
}

// CalibrationVsHoldout renders mean actual against mean predicted holdout
// purchases, bucketed by the chosen calibration covariate.
func (s *PlotService) CalibrationVsHoldout(rows []customer.CalibrationHoldoutRow, covariate diagnostics.Covariate, topN int) error {
	points, err := diagnostics.AggregateByCovariate(s.model, rows, covariate, topN)
	if err != nil {
		return err
	}
	s.log.Debug("calibration/holdout aggregation: %d buckets from %d rows", len(points), len(rows))

	x := make([]float64, len(points))
	actual := make([]float64, len(points))
	predicted := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Covariate
		actual[i] = p.MeanActual
		predicted[i] = p.MeanPredicted
	}

	return s.renderer.Lines([]ports.LineSeries{
		{Name: "Actual", X: x, Y: actual},
		{Name: "Model", X: x, Y: predicted},
	}, nil, ports.ChartSpec{
		Title:      "Actual Purchases in Holdout Period vs Predicted Purchases",
		XLabel:     covariateLabels[covariate],
		YLabel:     "Average of Purchases in Holdout Period",
		ShowLegend: true,
	})
}

// HistoryAlive renders a customer's probability-alive trace with vertical
// markers on the buckets that contained purchases.
func (s *PlotService) HistoryAlive(timestamps []time.Time, unit time.Duration, units int) error {
	path, err := diagnostics.ReconstructAlivePath(s.model, timestamps, unit, units)
	if err != nil {
		return err
	}

	x := make([]float64, len(path.Probabilities))
	for i := range x {
		x[i] = float64(i)
	}
	markers := make([]ports.MarkerLine, len(path.PurchaseBuckets))
	for i, b := range path.PurchaseBuckets {
		markers[i] = ports.MarkerLine{X: float64(b), Label: "purchase"}
	}

	return s.renderer.Lines([]ports.LineSeries{
		{Name: "P_alive", X: x, Y: path.Probabilities},
	}, markers, ports.ChartSpec{
		Title:      "History of P_alive",
		XLabel:     fmt.Sprintf("Time Units Since First Purchase (%s)", unit),
		YLabel:     "P_alive",
		ShowLegend: true,
		YMin:       0,
		YMax:       1,
	})
}

// ExpectedRepeatPurchases renders the theoretical cumulative repeat-purchase
// curve over the observed age range plus a dashed extrapolation to 1.5x.
// The range is derived from the model's training data.
func (s *PlotService) ExpectedRepeatPurchases() error {
	training := s.model.TrainingData()
	if len(training) == 0 {
		return errors.ConfigInvalid("model holds no training data to derive the observed age range from")
	}
	maxAge := customer.MaxAge(training)

	observed, extrapolated, err := diagnostics.RepeatPurchaseCurve(s.model, maxAge)
	if err != nil {
		return err
	}

	return s.renderer.Lines([]ports.LineSeries{
		{Name: "Expected", X: observed.Times, Y: observed.Values},
		{Name: "Extrapolated", X: extrapolated.Times, Y: extrapolated.Values, Dashed: true},
	}, nil, ports.ChartSpec{
		Title:      "Expected Number of Repeat Purchases per Customer",
		XLabel:     "Time Since First Purchase",
		ShowLegend: true,
	})
}

// PeriodTransactions renders the observed repeat-purchase histogram next to
// one simulated from the model.
func (s *PlotService) PeriodTransactions(bins int) error {
	actual, simulated, err := diagnostics.PeriodTransactions(s.model, bins)
	if err != nil {
		return err
	}

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	return s.renderer.Histogram([]ports.HistogramSeries{
		{Name: "Actual", Counts: actual},
		{Name: "Model", Counts: simulated},
	}, labels, ports.ChartSpec{
		Title:      "Frequency of Repeat Transactions",
		XLabel:     "Number of Calibration Period Transactions",
		YLabel:     "Customers",
		ShowLegend: true,
	})
}
