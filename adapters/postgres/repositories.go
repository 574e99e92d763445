// Package postgres loads transaction logs and customer summaries from
// PostgreSQL. Reads only; nothing in the diagnostic core persists results.
package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
	"clvplot/ports"
)

// TransactionRepository reads purchase histories from the transactions table.
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a PostgreSQL transaction repository.
func NewTransactionRepository(db *sqlx.DB) ports.TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionsByCustomer returns one customer's purchases, oldest first.
func (r *TransactionRepository) TransactionsByCustomer(ctx context.Context, customerID string) ([]customer.TransactionEvent, error) {
	var events []customer.TransactionEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT customer_id, purchased_at
		FROM transactions
		WHERE customer_id = $1
		ORDER BY purchased_at
	`, customerID)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}
	return events, nil
}

// SummaryRepository reads the per-customer summaries models are fitted on.
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a PostgreSQL summary repository.
func NewSummaryRepository(db *sqlx.DB) ports.SummaryRepository {
	return &SummaryRepository{db: db}
}

// CustomerSummaries returns every (frequency, recency, T) summary row.
func (r *SummaryRepository) CustomerSummaries(ctx context.Context) ([]customer.Summary, error) {
	var summaries []customer.Summary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT frequency, recency, t
		FROM customer_summary
	`)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}
	for i, s := range summaries {
		if s.Recency > s.Age {
			return nil, errors.InvariantViolationf(
				"customer_summary row %d has recency %g > age %g", i, s.Recency, s.Age)
		}
	}
	return summaries, nil
}

// CalibrationHoldoutRepository reads a precomputed calibration/holdout split.
type CalibrationHoldoutRepository struct {
	db *sqlx.DB
}

// NewCalibrationHoldoutRepository creates a PostgreSQL calibration/holdout repository.
func NewCalibrationHoldoutRepository(db *sqlx.DB) ports.CalibrationHoldoutRepository {
	return &CalibrationHoldoutRepository{db: db}
}

// CalibrationHoldoutRows returns every row of the split.
func (r *CalibrationHoldoutRepository) CalibrationHoldoutRows(ctx context.Context) ([]customer.CalibrationHoldoutRow, error) {
	var rows []customer.CalibrationHoldoutRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT frequency_cal, recency_cal, t_cal, frequency_holdout, duration_holdout
		FROM calibration_holdout
	`)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}
	return rows, nil
}
