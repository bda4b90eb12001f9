// Package kpi computes the business KPI result sets from a cleaned retail
// transaction table.
//
// The Calculator produces five independent result sets in one pass:
//
// Global KPIs: revenue, order, customer and product totals plus per-order
// averages.
//
// Product performance: per-product revenue, quantity and order counts,
// ranked by revenue.
//
// Price categories: products partitioned into fixed Low/Medium/High/Premium
// buckets by representative unit price, with per-bucket aggregates.
//
// Customer RFM metrics: recency/frequency/monetary values scored into
// quantile bands and mapped to a named segment through a fully enumerated
// lookup table.
//
// Temporal aggregates: revenue and order counts grouped by calendar date,
// weekday (Monday first) and hour of day.
//
// Every computation is a pure function of the cleaned table plus the
// analysis configuration; the computations never read each other's output
// and run concurrently.
package kpi
