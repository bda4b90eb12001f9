package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/config"
	"retailcli/internal/dataprocessing"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		PriceLowMax:    2.0,
		PriceMediumMax: 5.0,
		PriceHighMax:   10.0,
		RFMBands:       4,
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(testConfig(), nil)
}

func cleanedRow(invoice, stock, customer string, qty int, price float64, date time.Time) dataprocessing.CleanedTransaction {
	return dataprocessing.CleanedTransaction{
		Transaction: dataprocessing.Transaction{
			InvoiceNo:   invoice,
			StockCode:   stock,
			Description: "PRODUCT " + stock,
			Quantity:    qty,
			InvoiceDate: date,
			UnitPrice:   price,
			CustomerID:  customer,
			Country:     "United Kingdom",
		},
		Revenue: float64(qty) * price,
	}
}

// Fixture mirroring the documented three-row scenario: a return row is
// assumed already cleaned away, leaving two orders from two customers.
func scenarioRows() []dataprocessing.CleanedTransaction {
	return []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 2, 5.0, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)),
		cleanedRow("INV2", "P2", "B", 1, 100.0, time.Date(2023, 1, 2, 14, 0, 0, 0, time.UTC)),
	}
}

func TestCalculate_Scenario(t *testing.T) {
	calc := newTestCalculator()

	report, err := calc.Calculate(context.Background(), scenarioRows())
	require.NoError(t, err)

	assert.InDelta(t, 110.0, report.Global.TotalRevenue, 1e-9)
	assert.Equal(t, 2, report.Global.TotalOrders)
	assert.Equal(t, 2, report.Global.TotalCustomers)
	assert.Equal(t, 2, report.Global.TotalProducts)
	assert.InDelta(t, 55.0, report.Global.AverageOrderValue, 1e-9)
	assert.InDelta(t, 1.5, report.Global.AverageItemsPerOrder, 1e-9)

	// Reference date is the day after the latest invoice
	assert.Equal(t, time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), report.ReferenceDate)
	assert.NotEmpty(t, report.RunID)
}

func TestCalculate_EmptyInput(t *testing.T) {
	calc := newTestCalculator()

	report, err := calc.Calculate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, GlobalKPIs{}, report.Global)
	assert.Empty(t, report.Products)
	assert.Empty(t, report.PriceCategories)
	assert.Empty(t, report.Customers)
	assert.Empty(t, report.Daily)
	assert.Empty(t, report.Weekday)
	assert.Empty(t, report.Hourly)
}

func TestCalculate_RevenueConservation(t *testing.T) {
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 2, 1.50, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),
		cleanedRow("INV1", "P2", "A", 1, 4.00, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),
		cleanedRow("INV2", "P3", "B", 3, 7.50, time.Date(2023, 1, 3, 11, 0, 0, 0, time.UTC)),
		cleanedRow("INV3", "P1", "C", 5, 1.50, time.Date(2023, 1, 4, 16, 0, 0, 0, time.UTC)),
		cleanedRow("INV4", "P4", "B", 1, 25.00, time.Date(2023, 1, 5, 20, 0, 0, 0, time.UTC)),
	}

	calc := newTestCalculator()
	report, err := calc.Calculate(context.Background(), rows)
	require.NoError(t, err)

	var productRevenue float64
	for _, p := range report.Products {
		productRevenue += p.TotalRevenue
	}
	assert.InDelta(t, report.Global.TotalRevenue, productRevenue, 1e-9)

	var bucketRevenue float64
	for _, b := range report.PriceCategories {
		bucketRevenue += b.TotalRevenue
	}
	assert.InDelta(t, report.Global.TotalRevenue, bucketRevenue, 1e-9)

	var dailyRevenue float64
	for _, d := range report.Daily {
		dailyRevenue += d.Revenue
	}
	assert.InDelta(t, report.Global.TotalRevenue, dailyRevenue, 1e-9)

	var customerMonetary float64
	for _, m := range report.Customers {
		customerMonetary += m.Monetary
	}
	assert.InDelta(t, report.Global.TotalRevenue, customerMonetary, 1e-9)
}

func TestCalculate_Deterministic(t *testing.T) {
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 2, 1.50, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),
		cleanedRow("INV2", "P2", "B", 1, 4.00, time.Date(2023, 1, 3, 11, 0, 0, 0, time.UTC)),
		cleanedRow("INV3", "P3", "C", 3, 7.50, time.Date(2023, 1, 4, 16, 0, 0, 0, time.UTC)),
		cleanedRow("INV4", "P4", "D", 1, 25.00, time.Date(2023, 1, 5, 20, 0, 0, 0, time.UTC)),
	}

	calc := newTestCalculator()

	first, err := calc.Calculate(context.Background(), rows)
	require.NoError(t, err)
	second, err := calc.Calculate(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, first.Global, second.Global)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.PriceCategories, second.PriceCategories)
	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.SegmentStats, second.SegmentStats)
	assert.Equal(t, first.Daily, second.Daily)
	assert.Equal(t, first.Weekday, second.Weekday)
	assert.Equal(t, first.Hourly, second.Hourly)
}
