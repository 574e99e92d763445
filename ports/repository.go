package ports

import (
	"context"

	"clvplot/domain/customer"
)

// TransactionRepository loads a single customer's ordered purchase history.
type TransactionRepository interface {
	TransactionsByCustomer(ctx context.Context, customerID string) ([]customer.TransactionEvent, error)
}

// SummaryRepository loads the per-customer summaries a model was fitted on.
type SummaryRepository interface {
	CustomerSummaries(ctx context.Context) ([]customer.Summary, error)
}

// CalibrationHoldoutRepository loads a calibration/holdout split dataset.
type CalibrationHoldoutRepository interface {
	CalibrationHoldoutRows(ctx context.Context) ([]customer.CalibrationHoldoutRow, error)
}
