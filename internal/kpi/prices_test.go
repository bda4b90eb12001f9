package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/dataprocessing"
)

func TestCategoryOf_Thresholds(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		price    float64
		expected PriceCategory
	}{
		{0.50, CategoryLow},
		{1.99, CategoryLow},
		{2.00, CategoryMedium},
		{4.99, CategoryMedium},
		{5.00, CategoryHigh},
		{9.99, CategoryHigh},
		{10.00, CategoryPremium},
		{250.00, CategoryPremium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, calc.categoryOf(tt.price), "price %.2f", tt.price)
	}
}

func TestAnalyzePriceCategories_PartitionsProducts(t *testing.T) {
	day := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "CHEAP", "A", 10, 1.00, day),
		cleanedRow("INV2", "CHEAP", "B", 5, 1.00, day),
		cleanedRow("INV2", "MID", "B", 2, 3.50, day),
		cleanedRow("INV3", "DEAR", "C", 1, 25.00, day),
	}

	calc := newTestCalculator()
	stats := calc.analyzePriceCategories(context.Background(), rows)
	require.Len(t, stats, 3)

	var totalProducts int
	byCategory := make(map[PriceCategory]PriceCategoryStats)
	for _, s := range stats {
		totalProducts += s.NumberProducts
		byCategory[s.Category] = s
	}

	// Each product maps to exactly one bucket
	assert.Equal(t, 3, totalProducts)

	low := byCategory[CategoryLow]
	assert.Equal(t, 1, low.NumberProducts)
	assert.Equal(t, 2, low.NumberOrders)
	assert.InDelta(t, 15.0, low.TotalRevenue, 1e-9)

	premium := byCategory[CategoryPremium]
	assert.Equal(t, 1, premium.NumberProducts)
	assert.InDelta(t, 25.0, premium.TotalRevenue, 1e-9)
}

func TestAnalyzePriceCategories_RepresentativePrice(t *testing.T) {
	// The product's bucket follows its mean unit price, not any single line
	day := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "P1", "A", 1, 1.00, day),
		cleanedRow("INV2", "P1", "B", 1, 5.00, day), // mean 3.00 -> Medium
	}

	calc := newTestCalculator()
	stats := calc.analyzePriceCategories(context.Background(), rows)
	require.Len(t, stats, 1)
	assert.Equal(t, CategoryMedium, stats[0].Category)
	assert.Equal(t, 1, stats[0].NumberProducts)
}

func TestAnalyzePriceCategories_SortedByRevenue(t *testing.T) {
	day := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	rows := []dataprocessing.CleanedTransaction{
		cleanedRow("INV1", "CHEAP", "A", 100, 1.00, day), // Low, 100
		cleanedRow("INV2", "DEAR", "B", 1, 25.00, day),   // Premium, 25
		cleanedRow("INV3", "MID", "C", 1, 3.00, day),     // Medium, 3
	}

	calc := newTestCalculator()
	stats := calc.analyzePriceCategories(context.Background(), rows)
	require.Len(t, stats, 3)

	assert.Equal(t, CategoryLow, stats[0].Category)
	assert.Equal(t, CategoryPremium, stats[1].Category)
	assert.Equal(t, CategoryMedium, stats[2].Category)
}
