package dataprocessing

import (
	"log/slog"
)

// Clean filters invalid rows out of the raw table and derives the line
// revenue for survivors. Rows are removed when the quantity is not positive
// (returns and corrections), the unit price is not positive, or the customer
// id is absent. The function is pure and idempotent; an empty result is
// valid, not an error.
func Clean(rows []Transaction) ([]CleanedTransaction, CleanReport) {
	report := CleanReport{InputRows: len(rows)}
	cleaned := make([]CleanedTransaction, 0, len(rows))

	for _, row := range rows {
		switch {
		case row.Quantity <= 0:
			report.RemovedQuantity++
		case row.UnitPrice <= 0:
			report.RemovedUnitPrice++
		case !row.HasCustomer():
			report.RemovedNoCustomer++
		default:
			cleaned = append(cleaned, CleanedTransaction{
				Transaction: row,
				Revenue:     float64(row.Quantity) * row.UnitPrice,
			})
		}
	}

	report.OutputRows = len(cleaned)

	slog.Info("cleaned transactions",
		slog.Int("input_rows", report.InputRows),
		slog.Int("output_rows", report.OutputRows),
		slog.Int("removed_non_positive_quantity", report.RemovedQuantity),
		slog.Int("removed_non_positive_unit_price", report.RemovedUnitPrice),
		slog.Int("removed_missing_customer", report.RemovedNoCustomer))

	return cleaned, report
}
