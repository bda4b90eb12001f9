package kpi

import (
	"context"

	"retailcli/internal/dataprocessing"
)

// calculateGlobal computes the business-wide totals and per-order averages.
func (c *Calculator) calculateGlobal(ctx context.Context, rows []dataprocessing.CleanedTransaction) GlobalKPIs {
	invoices := make(map[string]struct{})
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	var totalRevenue float64
	var totalItems int

	for _, row := range rows {
		invoices[row.InvoiceNo] = struct{}{}
		customers[row.CustomerID] = struct{}{}
		products[row.StockCode] = struct{}{}
		totalRevenue += row.Revenue
		totalItems += row.Quantity
	}

	kpis := GlobalKPIs{
		TotalRevenue:   totalRevenue,
		TotalOrders:    len(invoices),
		TotalCustomers: len(customers),
		TotalProducts:  len(products),
	}

	// Zero denominators yield zero averages rather than an error
	if kpis.TotalOrders > 0 {
		kpis.AverageOrderValue = totalRevenue / float64(kpis.TotalOrders)
		kpis.AverageItemsPerOrder = float64(totalItems) / float64(kpis.TotalOrders)
	}

	c.logger.DebugContext(ctx, "global KPIs computed",
		"total_revenue", kpis.TotalRevenue,
		"total_orders", kpis.TotalOrders,
		"total_customers", kpis.TotalCustomers,
	)

	return kpis
}
