package kpi

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"retailcli/internal/config"
	"retailcli/internal/dataprocessing"
)

// Calculator computes every KPI result set from a cleaned transaction table.
// All computations are pure functions of the cleaned table plus the analysis
// configuration; none reads another's output, so they fan out concurrently
// and join before the report is returned.
type Calculator struct {
	cfg    config.AnalysisConfig
	logger *slog.Logger
}

// NewCalculator creates a calculator with the given business constants
func NewCalculator(cfg config.AnalysisConfig, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{cfg: cfg, logger: logger}
}

// Calculate computes the full KPI report for the cleaned table. An empty
// table is a valid degenerate input: the report carries zero KPIs and empty
// result sets, never an error.
func (c *Calculator) Calculate(ctx context.Context, rows []dataprocessing.CleanedTransaction) (*Report, error) {
	start := time.Now()

	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: start.UTC(),
	}

	c.logger.InfoContext(ctx, "starting KPI calculation",
		"run_id", report.RunID,
		"rows", len(rows),
	)

	if len(rows) == 0 {
		c.logger.WarnContext(ctx, "cleaned table is empty, reporting zero KPIs",
			"run_id", report.RunID,
		)
		return report, nil
	}

	report.ReferenceDate = referenceDate(rows)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.Global = c.calculateGlobal(gctx, rows)
		return nil
	})
	g.Go(func() error {
		report.Products = c.analyzeProducts(gctx, rows)
		return nil
	})
	g.Go(func() error {
		report.PriceCategories = c.analyzePriceCategories(gctx, rows)
		return nil
	})
	g.Go(func() error {
		report.Customers = c.calculateCustomerMetrics(gctx, rows, report.ReferenceDate)
		report.SegmentStats = summarizeSegments(report.Customers)
		return nil
	})
	g.Go(func() error {
		report.Daily, report.Weekday, report.Hourly = c.calculateTemporal(gctx, rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "KPI calculation complete",
		"run_id", report.RunID,
		"products", len(report.Products),
		"customers", len(report.Customers),
		"duration", time.Since(start),
	)

	return report, nil
}

// referenceDate returns the recency anchor: the day after the latest invoice
// date in the table.
func referenceDate(rows []dataprocessing.CleanedTransaction) time.Time {
	var max time.Time
	for _, row := range rows {
		if row.InvoiceDate.After(max) {
			max = row.InvoiceDate
		}
	}
	day := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, max.Location())
	return day.AddDate(0, 0, 1)
}
