package kpi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"retailcli/internal/dataprocessing"
)

// calculateCustomerMetrics computes the RFM table: per-customer recency,
// frequency and monetary value, quantile band scores and the segment label.
//
// Customers are processed in ascending customer id order so quantile ties
// resolve the same way on every run. When the customer population is smaller
// than the configured band count, the band count collapses to the population
// size instead of failing.
func (c *Calculator) calculateCustomerMetrics(ctx context.Context, rows []dataprocessing.CleanedTransaction, reference time.Time) []CustomerMetrics {
	type customerAgg struct {
		lastPurchase time.Time
		invoices     map[string]struct{}
		monetary     float64
	}

	byCustomer := make(map[string]*customerAgg)
	for _, row := range rows {
		agg, ok := byCustomer[row.CustomerID]
		if !ok {
			agg = &customerAgg{invoices: make(map[string]struct{})}
			byCustomer[row.CustomerID] = agg
		}
		if row.InvoiceDate.After(agg.lastPurchase) {
			agg.lastPurchase = row.InvoiceDate
		}
		agg.invoices[row.InvoiceNo] = struct{}{}
		agg.monetary += row.Revenue
	}

	customers := make([]CustomerMetrics, 0, len(byCustomer))
	for id, agg := range byCustomer {
		last := time.Date(agg.lastPurchase.Year(), agg.lastPurchase.Month(), agg.lastPurchase.Day(),
			0, 0, 0, 0, agg.lastPurchase.Location())
		customers = append(customers, CustomerMetrics{
			CustomerID: id,
			Recency:    int(reference.Sub(last).Hours() / 24),
			Frequency:  len(agg.invoices),
			Monetary:   agg.monetary,
		})
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerID < customers[j].CustomerID
	})

	bands := c.cfg.RFMBands
	if len(customers) < bands {
		c.logger.WarnContext(ctx, "customer population smaller than RFM band count, collapsing bands",
			"customers", len(customers),
			"configured_bands", bands,
		)
		bands = len(customers)
	}
	if bands < 1 {
		bands = 1
	}

	recencyThresholds := quantileThresholds(customers, bands, func(m CustomerMetrics) float64 { return float64(m.Recency) })
	frequencyThresholds := quantileThresholds(customers, bands, func(m CustomerMetrics) float64 { return float64(m.Frequency) })
	monetaryThresholds := quantileThresholds(customers, bands, func(m CustomerMetrics) float64 { return m.Monetary })

	for i := range customers {
		m := &customers[i]
		m.RecencyScore = scoreReversed(float64(m.Recency), recencyThresholds, bands)
		m.FrequencyScore = scoreDirect(float64(m.Frequency), frequencyThresholds)
		m.MonetaryScore = scoreDirect(m.Monetary, monetaryThresholds)
		m.RFMScore = fmt.Sprintf("%d%d%d", m.RecencyScore, m.FrequencyScore, m.MonetaryScore)
		m.Segment = segmentFor(m.RecencyScore, m.FrequencyScore, m.MonetaryScore, bands)
	}

	c.logger.DebugContext(ctx, "customer RFM metrics computed",
		"customers", len(customers),
		"bands", bands,
		"reference_date", reference.Format("2006-01-02"),
	)

	return customers
}

// quantileThresholds returns the bands-1 lower empirical quantile cut points
// of the extracted values, sorted ascending.
func quantileThresholds(customers []CustomerMetrics, bands int, value func(CustomerMetrics) float64) []float64 {
	values := make([]float64, len(customers))
	for i, m := range customers {
		values[i] = value(m)
	}
	sort.Float64s(values)

	n := len(values)
	thresholds := make([]float64, 0, bands-1)
	for k := 1; k < bands; k++ {
		idx := (k*n+bands-1)/bands - 1 // ceil(k*n/bands) - 1
		thresholds = append(thresholds, values[idx])
	}
	return thresholds
}

// scoreDirect bins a value where higher is better: values at or below the
// first cut point take band 1, values above the last take the top band.
func scoreDirect(v float64, thresholds []float64) int {
	score := 1
	for _, t := range thresholds {
		if v > t {
			score++
		}
	}
	return score
}

// scoreReversed bins a value where lower is better, so the smallest values
// take the top band. Used for recency: the most recently active customers
// must land in the top band.
func scoreReversed(v float64, thresholds []float64, bands int) int {
	return bands + 1 - scoreDirect(v, thresholds)
}

// summarizeSegments aggregates customer counts and average monetary value
// per segment, largest segments first.
func summarizeSegments(customers []CustomerMetrics) []SegmentStat {
	type segmentAgg struct {
		count    int
		monetary float64
	}

	bySegment := make(map[Segment]*segmentAgg)
	for _, m := range customers {
		agg, ok := bySegment[m.Segment]
		if !ok {
			agg = &segmentAgg{}
			bySegment[m.Segment] = agg
		}
		agg.count++
		agg.monetary += m.Monetary
	}

	stats := make([]SegmentStat, 0, len(bySegment))
	for segment, agg := range bySegment {
		stats = append(stats, SegmentStat{
			Segment:         segment,
			NumberCustomers: agg.count,
			AverageMonetary: agg.monetary / float64(agg.count),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].NumberCustomers != stats[j].NumberCustomers {
			return stats[i].NumberCustomers > stats[j].NumberCustomers
		}
		return stats[i].Segment < stats[j].Segment
	})

	return stats
}
