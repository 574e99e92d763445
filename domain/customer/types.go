package customer

import "time"

// Summary is the per-customer view a lifetime-value model is fitted on.
// Frequency counts repeat transactions only; the founding transaction is
// excluded. Recency is the elapsed time between the first and the most
// recent observed transaction, and Age (often written T) the elapsed time
// between the first transaction and the end of the observation window.
// Invariant: Recency <= Age for every customer.
type Summary struct {
	Frequency float64 `db:"frequency" json:"frequency"`
	Recency   float64 `db:"recency" json:"recency"`
	Age       float64 `db:"t" json:"T"`
}

// CalibrationHoldoutRow is one customer split into an earlier calibration
// window, whose covariates feed the model, and a later holdout window, whose
// observed purchases measure it. DurationHoldout is the holdout window
// length and must be identical across all rows of a dataset.
type CalibrationHoldoutRow struct {
	FrequencyCal     float64 `db:"frequency_cal" json:"frequency_cal"`
	RecencyCal       float64 `db:"recency_cal" json:"recency_cal"`
	AgeCal           float64 `db:"t_cal" json:"T_cal"`
	FrequencyHoldout float64 `db:"frequency_holdout" json:"frequency_holdout"`
	DurationHoldout  float64 `db:"duration_holdout" json:"duration_holdout"`
}

// TransactionEvent is a single purchase in a customer's history. Histories
// are ordered ascending by timestamp; same-bucket duplicates are allowed
// (multiple purchases on the same day collapse during discretization).
type TransactionEvent struct {
	CustomerID  string    `db:"customer_id" json:"customer_id"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}

// MaxFrequency returns the largest observed Frequency, or 0 for no data.
func MaxFrequency(summaries []Summary) float64 {
	max := 0.0
	for _, s := range summaries {
		if s.Frequency > max {
			max = s.Frequency
		}
	}
	return max
}

// MaxAge returns the largest observed Age, or 0 for no data.
func MaxAge(summaries []Summary) float64 {
	max := 0.0
	for _, s := range summaries {
		if s.Age > max {
			max = s.Age
		}
	}
	return max
}
