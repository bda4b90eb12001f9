// Package dataprocessing handles ingestion and cleaning of the raw retail
// transaction export.
//
// The loader validates the CSV against the fixed required schema, parses
// numeric cells (tolerating European decimal commas) and timestamps
// (tolerating multiple layouts, dropping and counting rows that match none).
// The cleaner filters returns, zero-priced rows and anonymous rows, and
// derives the per-line revenue. Both stages report row-level diagnostics so
// data-quality issues are auditable.
package dataprocessing
