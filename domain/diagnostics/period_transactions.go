package diagnostics

import (
	"clvplot/internal/errors"
	"clvplot/ports"
)

// PeriodTransactions compares the observed distribution of repeat-purchase
// counts against one simulated from the model: for each integer bin b in
// [0, bins) it counts training customers with frequency b next to synthetic
// customers with frequency b, from a sample the same size as the training
// data. A fitted model should reproduce its own frequency histogram;
// divergence here is the quickest visual fit check. Frequencies at or above
// bins fall outside the histogram and are dropped from both counts.
func PeriodTransactions(model ports.FittedModel, bins int) (actual, simulated []float64, err error) {
	if bins <= 0 {
		return nil, nil, errors.ConfigInvalidf("bins must be positive, got %d", bins)
	}
	training := model.TrainingData()
	if len(training) == 0 {
		return nil, nil, errors.ConfigInvalid("model holds no training data to histogram")
	}

	actual = make([]float64, bins)
	for _, s := range training {
		if b := int(s.Frequency); b >= 0 && b < bins {
			actual[b]++
		}
	}

	simulated = make([]float64, bins)
	for _, s := range model.SampleCustomers(len(training)) {
		if b := int(s.Frequency); b >= 0 && b < bins {
			simulated[b]++
		}
	}
	return actual, simulated, nil
}
