package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRow(invoice, customer string, qty int, price float64, date time.Time) Transaction {
	return Transaction{
		InvoiceNo:   invoice,
		StockCode:   "85123A",
		Description: "WHITE HANGING HEART",
		Quantity:    qty,
		InvoiceDate: date,
		UnitPrice:   price,
		CustomerID:  customer,
		Country:     "United Kingdom",
	}
}

func TestClean_FiltersInvalidRows(t *testing.T) {
	date := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []Transaction{
		makeRow("A001", "17850", 6, 2.55, date),
		makeRow("A002", "17850", -1, 2.55, date), // return
		makeRow("A003", "17850", 0, 2.55, date),
		makeRow("A004", "17850", 6, 0, date),
		makeRow("A005", "17850", 6, -1.50, date),
		makeRow("A006", "", 6, 2.55, date), // anonymous
	}

	cleaned, report := Clean(rows)

	require.Len(t, cleaned, 1)
	assert.Equal(t, 6, report.InputRows)
	assert.Equal(t, 1, report.OutputRows)
	assert.Equal(t, 2, report.RemovedQuantity)
	assert.Equal(t, 2, report.RemovedUnitPrice)
	assert.Equal(t, 1, report.RemovedNoCustomer)
	assert.Equal(t, 5, report.Removed())
}

func TestClean_DerivesRevenue(t *testing.T) {
	date := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []Transaction{
		makeRow("A001", "17850", 6, 2.55, date),
		makeRow("A002", "12583", 3, 10.00, date),
	}

	cleaned, _ := Clean(rows)

	require.Len(t, cleaned, 2)
	assert.InDelta(t, 15.30, cleaned[0].Revenue, 1e-9)
	assert.InDelta(t, 30.00, cleaned[1].Revenue, 1e-9)
}

func TestClean_Idempotent(t *testing.T) {
	date := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []Transaction{
		makeRow("A001", "17850", 6, 2.55, date),
		makeRow("A002", "17850", -1, 2.55, date),
		makeRow("A003", "12583", 2, 5.00, date),
	}

	once, _ := Clean(rows)

	raw := make([]Transaction, len(once))
	for i, row := range once {
		raw[i] = row.Transaction
	}
	twice, report := Clean(raw)

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, report.Removed())
}

func TestClean_EmptyInput(t *testing.T) {
	cleaned, report := Clean(nil)

	assert.Empty(t, cleaned)
	assert.Equal(t, 0, report.InputRows)
	assert.Equal(t, 0, report.OutputRows)
}

func TestClean_AllRowsRemoved(t *testing.T) {
	date := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []Transaction{
		makeRow("A001", "", -1, 0, date),
		makeRow("A002", "17850", -5, 2.55, date),
	}

	cleaned, report := Clean(rows)

	assert.Empty(t, cleaned)
	assert.Equal(t, 2, report.Removed())
}
