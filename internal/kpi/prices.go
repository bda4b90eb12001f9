package kpi

import (
	"context"
	"sort"

	"retailcli/internal/dataprocessing"
)

// categoryOf assigns a representative unit price to its fixed bucket. The
// thresholds come from configuration, never from the data, so bucket
// membership is stable and comparable across runs.
func (c *Calculator) categoryOf(price float64) PriceCategory {
	switch {
	case price < c.cfg.PriceLowMax:
		return CategoryLow
	case price < c.cfg.PriceMediumMax:
		return CategoryMedium
	case price < c.cfg.PriceHighMax:
		return CategoryHigh
	default:
		return CategoryPremium
	}
}

// analyzePriceCategories assigns each product to exactly one price bucket by
// its mean unit price, then joins the assignment back onto the cleaned table
// to aggregate distinct products, distinct orders and revenue per bucket.
func (c *Calculator) analyzePriceCategories(ctx context.Context, rows []dataprocessing.CleanedTransaction) []PriceCategoryStats {
	type priceAgg struct {
		sum   float64
		lines int
	}

	// Representative price per product: mean unit price across its line items
	prices := make(map[string]*priceAgg)
	for _, row := range rows {
		agg, ok := prices[row.StockCode]
		if !ok {
			agg = &priceAgg{}
			prices[row.StockCode] = agg
		}
		agg.sum += row.UnitPrice
		agg.lines++
	}

	category := make(map[string]PriceCategory, len(prices))
	for code, agg := range prices {
		category[code] = c.categoryOf(agg.sum / float64(agg.lines))
	}

	type bucketAgg struct {
		products map[string]struct{}
		invoices map[string]struct{}
		revenue  float64
		priceSum float64
		lines    int
	}

	buckets := make(map[PriceCategory]*bucketAgg)
	for _, row := range rows {
		cat := category[row.StockCode]
		agg, ok := buckets[cat]
		if !ok {
			agg = &bucketAgg{
				products: make(map[string]struct{}),
				invoices: make(map[string]struct{}),
			}
			buckets[cat] = agg
		}
		agg.products[row.StockCode] = struct{}{}
		agg.invoices[row.InvoiceNo] = struct{}{}
		agg.revenue += row.Revenue
		agg.priceSum += row.UnitPrice
		agg.lines++
	}

	stats := make([]PriceCategoryStats, 0, len(buckets))
	for cat, agg := range buckets {
		stats = append(stats, PriceCategoryStats{
			Category:       cat,
			NumberProducts: len(agg.products),
			NumberOrders:   len(agg.invoices),
			TotalRevenue:   agg.revenue,
			AveragePrice:   agg.priceSum / float64(agg.lines),
		})
	}

	// Revenue descending; rank 0 is the highest-revenue bucket
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalRevenue != stats[j].TotalRevenue {
			return stats[i].TotalRevenue > stats[j].TotalRevenue
		}
		return stats[i].Category < stats[j].Category
	})

	c.logger.DebugContext(ctx, "price category analysis computed",
		"buckets", len(stats),
	)

	return stats
}
