package exporter

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"retailcli/internal/dataprocessing"
	apperrors "retailcli/internal/errors"
	"retailcli/internal/kpi"
)

// Artifact file names are the contract consumed by the report-rendering
// collaborator; they must stay stable across releases.
const (
	FileGlobalKPIs      = "global_kpis.json"
	FileCustomerMetrics = "customer_metrics.csv"
	FilePriceAnalysis   = "price_analysis.csv"
	FileTopProducts     = "top_products.csv"
	FileTemporalDaily   = "temporal_daily.csv"
	FileTemporalWeekday = "temporal_weekday.csv"
	FileTemporalHourly  = "temporal_hourly.csv"
	FileSegmentStats    = "segment_stats.csv"
	FileRunReport       = "run_report.json"
	FileWorkbook        = "retail_report.xlsx"
)

// RunDiagnostics carries the loader and cleaner reports into the run report
// so data-quality issues are auditable from the results directory alone.
type RunDiagnostics struct {
	RunID       string                      `json:"run_id"`
	GeneratedAt time.Time                   `json:"generated_at"`
	InputFile   string                      `json:"input_file,omitempty"`
	Load        *dataprocessing.LoadReport  `json:"load,omitempty"`
	Clean       *dataprocessing.CleanReport `json:"clean,omitempty"`
	Duration    string                      `json:"duration,omitempty"`
}

// ResultSink serializes every KPI result set into the results directory.
// The sink is not transactional: a failed artifact is reported as a write
// error but artifacts already written stay on disk.
type ResultSink struct {
	resultsDir string
	csvWriter  *CSVWriter
	logger     *slog.Logger
}

// NewResultSink creates a sink writing into resultsDir
func NewResultSink(resultsDir string, logger *slog.Logger) *ResultSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultSink{
		resultsDir: resultsDir,
		csvWriter:  NewCSVWriter(resultsDir),
		logger:     logger,
	}
}

// Write persists the full report. Every artifact is attempted; the returned
// error joins one write error per failed artifact. Empty result sets still
// produce header-only files so the artifact contract holds for degenerate
// runs.
func (s *ResultSink) Write(report *kpi.Report, diagnostics RunDiagnostics) error {
	s.logger.Info("writing result artifacts",
		"results_dir", s.resultsDir,
		"run_id", report.RunID,
	)

	var errs []error
	fail := func(artifact string, err error) {
		if err != nil {
			s.logger.Error("failed to write artifact", "artifact", artifact, "error", err)
			errs = append(errs, apperrors.NewWriteError(artifact, err))
		}
	}

	fail(FileGlobalKPIs, writeJSON(filepath.Join(s.resultsDir, FileGlobalKPIs), report.Global))
	fail(FileCustomerMetrics, s.writeCustomerMetrics(report.Customers))
	fail(FilePriceAnalysis, s.writePriceAnalysis(report.PriceCategories))
	fail(FileTopProducts, s.writeTopProducts(report.Products))
	fail(FileTemporalDaily, s.writeTemporalDaily(report.Daily))
	fail(FileTemporalWeekday, s.writeTemporalWeekday(report.Weekday))
	fail(FileTemporalHourly, s.writeTemporalHourly(report.Hourly))
	fail(FileSegmentStats, s.writeSegmentStats(report.SegmentStats))
	fail(FileRunReport, writeJSON(filepath.Join(s.resultsDir, FileRunReport), diagnostics))
	fail(FileWorkbook, s.writeWorkbook(report))

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.logger.Info("result artifacts written", "run_id", report.RunID)
	return nil
}

func (s *ResultSink) writeCustomerMetrics(customers []kpi.CustomerMetrics) error {
	headers := []string{
		"CustomerID", "Recency", "Frequency", "MonetaryValue",
		"Recency_Score", "Frequency_Score", "MonetaryValue_Score",
		"RFM_Score", "RFM_Segment",
	}
	records := make([][]string, 0, len(customers))
	for _, m := range customers {
		records = append(records, []string{
			m.CustomerID,
			formatInt(m.Recency),
			formatInt(m.Frequency),
			formatFloat(m.Monetary),
			formatInt(m.RecencyScore),
			formatInt(m.FrequencyScore),
			formatInt(m.MonetaryScore),
			m.RFMScore,
			string(m.Segment),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FileCustomerMetrics, headers, records)
}

func (s *ResultSink) writePriceAnalysis(stats []kpi.PriceCategoryStats) error {
	headers := []string{"PriceCategory", "NumberProducts", "NumberOrders", "TotalRevenue", "AveragePrice"}
	records := make([][]string, 0, len(stats))
	for _, b := range stats {
		records = append(records, []string{
			string(b.Category),
			formatInt(b.NumberProducts),
			formatInt(b.NumberOrders),
			formatFloat(b.TotalRevenue),
			formatFloat(b.AveragePrice),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FilePriceAnalysis, headers, records)
}

// writeTopProducts streams the product table since it can carry one row per
// distinct product in the catalog.
func (s *ResultSink) writeTopProducts(products []kpi.ProductPerformance) error {
	headers := []string{"StockCode", "Description", "TotalRevenue", "TotalQuantity", "NumberOrders", "AveragePrice"}

	stream, err := s.csvWriter.CreateStreamWriter(FileTopProducts, headers)
	if err != nil {
		return err
	}

	for _, p := range products {
		record := []string{
			p.StockCode,
			p.Description,
			formatFloat(p.TotalRevenue),
			formatInt(p.TotalQuantity),
			formatInt(p.NumberOrders),
			formatFloat(p.AveragePrice),
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return err
		}
	}

	return stream.Close()
}

func (s *ResultSink) writeTemporalDaily(daily []kpi.DailySales) error {
	headers := []string{"Date", "Revenue", "Orders", "Items"}
	records := make([][]string, 0, len(daily))
	for _, d := range daily {
		records = append(records, []string{
			d.Date.Format("2006-01-02"),
			formatFloat(d.Revenue),
			formatInt(d.Orders),
			formatInt(d.Items),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FileTemporalDaily, headers, records)
}

func (s *ResultSink) writeTemporalWeekday(weekly []kpi.WeekdaySales) error {
	headers := []string{"WeekDay", "Revenue", "Orders", "Items"}
	records := make([][]string, 0, len(weekly))
	for _, w := range weekly {
		records = append(records, []string{
			w.Weekday.String(),
			formatFloat(w.Revenue),
			formatInt(w.Orders),
			formatInt(w.Items),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FileTemporalWeekday, headers, records)
}

func (s *ResultSink) writeTemporalHourly(hourly []kpi.HourlySales) error {
	headers := []string{"Hour", "Revenue", "Orders", "Items"}
	records := make([][]string, 0, len(hourly))
	for _, h := range hourly {
		records = append(records, []string{
			strconv.Itoa(h.Hour),
			formatFloat(h.Revenue),
			formatInt(h.Orders),
			formatInt(h.Items),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FileTemporalHourly, headers, records)
}

func (s *ResultSink) writeSegmentStats(stats []kpi.SegmentStat) error {
	headers := []string{"RFM_Segment", "NumberCustomers", "AverageMonetary"}
	records := make([][]string, 0, len(stats))
	for _, seg := range stats {
		records = append(records, []string{
			string(seg.Segment),
			formatInt(seg.NumberCustomers),
			formatFloat(seg.AverageMonetary),
		})
	}
	return s.csvWriter.WriteSimpleCSV(FileSegmentStats, headers, records)
}
