// Command clvplot renders the full diagnostic chart set for a BG/NBD model.
// Training data and purchase histories come from PostgreSQL when
// DATABASE_URL is set, and from the model's own generative process
// otherwise, so the demo runs with no infrastructure at all.
package main

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"clvplot/adapters/bgnbd"
	"clvplot/adapters/echarts"
	"clvplot/adapters/excel"
	"clvplot/adapters/postgres"
	"clvplot/app"
	"clvplot/domain/customer"
	"clvplot/domain/diagnostics"
	"clvplot/internal"
	"clvplot/internal/config"
)

// syntheticCustomers matches the CDNOW cohort size used when no database is
// configured.
const syntheticCustomers = 2357

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	log := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *internal.Logger) error {
	params := bgnbd.Params{R: cfg.Model.R, Alpha: cfg.Model.Alpha, A: cfg.Model.A, B: cfg.Model.B}

	var db *sqlx.DB
	if cfg.Database.URL != "" {
		var err error
		db, err = sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	training, err := loadTrainingData(ctx, cfg, db, params, log)
	if err != nil {
		return err
	}

	model, err := bgnbd.New(params, training)
	if err != nil {
		return err
	}
	// Keep the model's simulation stream distinct from the one that may have
	// synthesized the training cohort above.
	model = model.WithSeed(7)

	rendererCfg := echarts.DefaultConfig(cfg.Charts.OutputDir)
	rendererCfg.Theme = cfg.Charts.Theme
	renderer := echarts.NewRenderer(rendererCfg)
	plots := app.NewPlotService(model, renderer, log)

	if err := plots.FrequencyRecencyMatrix(cfg.Model.Horizon, cfg.Model.MaxFrequency, cfg.Model.MaxRecency); err != nil {
		return err
	}
	if err := plots.ProbabilityAliveMatrix(cfg.Model.MaxFrequency, cfg.Model.MaxRecency); err != nil {
		return err
	}
	if err := plots.ExpectedRepeatPurchases(); err != nil {
		return err
	}
	if err := plots.PeriodTransactions(cfg.Model.HistogramBins); err != nil {
		return err
	}

	if cfg.Data.CalibrationFile != "" {
		reader := excel.NewCalibrationReader(cfg.Data.CalibrationFile)
		rows, err := reader.CalibrationHoldoutRows(ctx)
		if err != nil {
			return err
		}
		if err := plots.CalibrationVsHoldout(rows, diagnostics.CovariateFrequency, 7); err != nil {
			return err
		}
	} else {
		log.Warn("CALIBRATION_FILE not set, skipping calibration/holdout chart")
	}

	timestamps, err := loadHistory(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	if err := plots.HistoryAlive(timestamps, 24*time.Hour, 120); err != nil {
		return err
	}

	for _, a := range renderer.Artifacts() {
		log.Info("rendered %s -> %s", a.Title, a.Path)
	}
	return nil
}

// loadTrainingData reads customer summaries from PostgreSQL when available
// and otherwise simulates a cohort from the configured parameters.
func loadTrainingData(ctx context.Context, cfg *config.Config, db *sqlx.DB, params bgnbd.Params, log *internal.Logger) ([]customer.Summary, error) {
	if db != nil {
		summaries, err := postgres.NewSummaryRepository(db).CustomerSummaries(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("loaded %d customer summaries from postgres", len(summaries))
		return summaries, nil
	}

	seed, err := bgnbd.New(params, nil)
	if err != nil {
		return nil, err
	}
	log.Info("no database configured, simulating %d customers", syntheticCustomers)
	return seed.SampleCustomers(syntheticCustomers), nil
}

// loadHistory picks the purchase history for the alive-path trace: the
// configured customer's transactions when a database is available, a seeded
// synthetic history otherwise.
func loadHistory(ctx context.Context, cfg *config.Config, db *sqlx.DB, log *internal.Logger) ([]time.Time, error) {
	if db != nil && cfg.Data.CustomerID != "" {
		events, err := postgres.NewTransactionRepository(db).TransactionsByCustomer(ctx, cfg.Data.CustomerID)
		if err != nil {
			return nil, err
		}
		timestamps := make([]time.Time, len(events))
		for i, e := range events {
			timestamps[i] = e.PurchasedAt
		}
		log.Info("loaded %d transactions for customer %s", len(timestamps), cfg.Data.CustomerID)
		return timestamps, nil
	}

	log.Warn("no customer history source, using a synthetic purchase history")
	start := time.Now().AddDate(0, -4, 0)
	return syntheticHistory(1, start, 8, 10*24*time.Hour), nil
}

// syntheticHistory generates n ascending purchase timestamps with seeded
// exponential gaps around meanGap, for demo runs without a database.
func syntheticHistory(seed uint64, start time.Time, n int, meanGap time.Duration) []time.Time {
	rng := rand.New(rand.NewPCG(seed, 0))
	out := make([]time.Time, n)
	ts := start
	for i := range out {
		out[i] = ts
		ts = ts.Add(time.Duration(rng.ExpFloat64() * float64(meanGap)))
	}
	return out
}
