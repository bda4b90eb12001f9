package dataprocessing

import (
	"time"
)

// Transaction represents a single raw line item from the retail export.
// An invoice spans many rows; there is no uniqueness constraint.
type Transaction struct {
	InvoiceNo   string    `json:"invoice_no"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"` // negative for returns
	InvoiceDate time.Time `json:"invoice_date"`
	UnitPrice   float64   `json:"unit_price"`
	CustomerID  string    `json:"customer_id"` // empty when absent
	Country     string    `json:"country"`
}

// HasCustomer reports whether the row carries a customer identifier
func (t Transaction) HasCustomer() bool {
	return t.CustomerID != ""
}

// CleanedTransaction is a Transaction that passed validation, with the
// derived line revenue. Every cleaned row satisfies Quantity > 0,
// UnitPrice > 0 and a present CustomerID.
type CleanedTransaction struct {
	Transaction
	Revenue float64 `json:"revenue"` // Quantity * UnitPrice
}

// LoadReport carries loader diagnostics so data-quality issues can be
// audited without consulting logs.
type LoadReport struct {
	TotalRows      int      `json:"total_rows"`
	LoadedRows     int      `json:"loaded_rows"`
	DroppedDates   int      `json:"dropped_dates"`
	SampleBadDates []string `json:"sample_bad_dates,omitempty"`
	IgnoredColumns []string `json:"ignored_columns,omitempty"`
}

// CleanReport counts rows removed per reason during cleaning.
type CleanReport struct {
	InputRows         int `json:"input_rows"`
	OutputRows        int `json:"output_rows"`
	RemovedQuantity   int `json:"removed_non_positive_quantity"`
	RemovedUnitPrice  int `json:"removed_non_positive_unit_price"`
	RemovedNoCustomer int `json:"removed_missing_customer"`
}

// Removed returns the total number of rows filtered out
func (r CleanReport) Removed() int {
	return r.RemovedQuantity + r.RemovedUnitPrice + r.RemovedNoCustomer
}
