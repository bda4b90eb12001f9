package kpi

import (
	"context"
	"sort"

	"retailcli/internal/dataprocessing"
)

// analyzeProducts aggregates the cleaned table per distinct product and
// ranks products by revenue. The full table is retained; truncating to a
// top N is the rendering layer's concern, not the KPI layer's.
func (c *Calculator) analyzeProducts(ctx context.Context, rows []dataprocessing.CleanedTransaction) []ProductPerformance {
	type productAgg struct {
		description string
		revenue     float64
		quantity    int
		priceSum    float64
		lines       int
		invoices    map[string]struct{}
	}

	byProduct := make(map[string]*productAgg)

	for _, row := range rows {
		agg, ok := byProduct[row.StockCode]
		if !ok {
			agg = &productAgg{invoices: make(map[string]struct{})}
			byProduct[row.StockCode] = agg
		}
		if agg.description == "" {
			agg.description = row.Description
		}
		agg.revenue += row.Revenue
		agg.quantity += row.Quantity
		agg.priceSum += row.UnitPrice
		agg.lines++
		agg.invoices[row.InvoiceNo] = struct{}{}
	}

	products := make([]ProductPerformance, 0, len(byProduct))
	for code, agg := range byProduct {
		products = append(products, ProductPerformance{
			StockCode:     code,
			Description:   agg.description,
			TotalRevenue:  agg.revenue,
			TotalQuantity: agg.quantity,
			NumberOrders:  len(agg.invoices),
			AveragePrice:  agg.priceSum / float64(agg.lines),
		})
	}

	// Revenue descending, stock code ascending for a stable ranking
	sort.Slice(products, func(i, j int) bool {
		if products[i].TotalRevenue != products[j].TotalRevenue {
			return products[i].TotalRevenue > products[j].TotalRevenue
		}
		return products[i].StockCode < products[j].StockCode
	})

	c.logger.DebugContext(ctx, "product performance computed",
		"products", len(products),
	)

	return products
}
