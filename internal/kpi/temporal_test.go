package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/dataprocessing"
)

func TestCalculateTemporal_Daily(t *testing.T) {
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 2, 5.00, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),
		cleanedRow("INV2", "P1", "B", 1, 5.00, time.Date(2023, 1, 2, 17, 0, 0, 0, time.UTC)),
		cleanedRow("INV3", "P1", "A", 3, 2.00, time.Date(2023, 1, 4, 11, 0, 0, 0, time.UTC)),
	}

	calc := newTestCalculator()
	daily, _, _ := calc.calculateTemporal(context.Background(), rows)
	require.Len(t, daily, 2)

	// Ascending by date
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), daily[0].Date)
	assert.InDelta(t, 15.0, daily[0].Revenue, 1e-9)
	assert.Equal(t, 2, daily[0].Orders)
	assert.Equal(t, 3, daily[0].Items)

	assert.Equal(t, time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), daily[1].Date)
	assert.InDelta(t, 6.0, daily[1].Revenue, 1e-9)
}

func TestCalculateTemporal_WeekdayChronologicalOrder(t *testing.T) {
	// 2023-01-01 is a Sunday; feed days out of order and across the week
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 1, 1.00, time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)),  // Sunday
		cleanedRow("INV2", "P1", "A", 1, 1.00, time.Date(2023, 1, 6, 9, 0, 0, 0, time.UTC)),  // Friday
		cleanedRow("INV3", "P1", "A", 1, 1.00, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),  // Monday
		cleanedRow("INV4", "P1", "A", 1, 1.00, time.Date(2023, 1, 4, 9, 0, 0, 0, time.UTC)),  // Wednesday
	}

	calc := newTestCalculator()
	_, weekly, _ := calc.calculateTemporal(context.Background(), rows)
	require.Len(t, weekly, 4)

	// Monday through Sunday regardless of input order, never alphabetical
	expected := []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Sunday}
	for i, w := range weekly {
		assert.Equal(t, expected[i], w.Weekday)
	}
}

func TestCalculateTemporal_Hourly(t *testing.T) {
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 1, 2.00, time.Date(2023, 1, 2, 17, 30, 0, 0, time.UTC)),
		cleanedRow("INV2", "P1", "B", 1, 3.00, time.Date(2023, 1, 3, 9, 15, 0, 0, time.UTC)),
		cleanedRow("INV3", "P1", "B", 1, 4.00, time.Date(2023, 1, 4, 9, 45, 0, 0, time.UTC)),
	}

	calc := newTestCalculator()
	_, _, hourly := calc.calculateTemporal(context.Background(), rows)
	require.Len(t, hourly, 2)

	assert.Equal(t, 9, hourly[0].Hour)
	assert.InDelta(t, 7.0, hourly[0].Revenue, 1e-9)
	assert.Equal(t, 2, hourly[0].Orders)

	assert.Equal(t, 17, hourly[1].Hour)
	assert.InDelta(t, 2.0, hourly[1].Revenue, 1e-9)
}

func TestCalculateTemporal_IndependentGroupings(t *testing.T) {
	// Weekday and hourly must re-group the cleaned table, so their revenue
	// totals match the daily total.
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 2, 5.00, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)),
		cleanedRow("INV2", "P2", "B", 1, 7.00, time.Date(2023, 1, 3, 14, 0, 0, 0, time.UTC)),
		cleanedRow("INV3", "P3", "C", 4, 1.50, time.Date(2023, 1, 9, 9, 0, 0, 0, time.UTC)),
	}

	calc := newTestCalculator()
	daily, weekly, hourly := calc.calculateTemporal(context.Background(), rows)

	var dailyTotal, weeklyTotal, hourlyTotal float64
	for _, d := range daily {
		dailyTotal += d.Revenue
	}
	for _, w := range weekly {
		weeklyTotal += w.Revenue
	}
	for _, h := range hourly {
		hourlyTotal += h.Revenue
	}

	assert.InDelta(t, dailyTotal, weeklyTotal, 1e-9)
	assert.InDelta(t, dailyTotal, hourlyTotal, 1e-9)
}
