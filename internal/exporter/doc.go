// Package exporter serializes KPI results into the results directory.
//
// This package contains three main components:
//
// CSVWriter: core CSV writing with headers, streaming and a UTF-8 BOM for
// Excel compatibility.
//
// ResultSink: writes every result set of a KPI report to its contract file
// name (global_kpis.json, customer_metrics.csv, price_analysis.csv,
// top_products.csv, the three temporal CSVs), plus the segment summary, the
// run diagnostics JSON and an Excel workbook. Artifact writes are
// independent: a failed artifact is reported without rolling back artifacts
// already on disk.
package exporter
