package kpi

import (
	"context"
	"sort"
	"time"

	"retailcli/internal/dataprocessing"
)

// weekdayOrder lists weekdays chronologically, Monday first. Output ordering
// must not fall back to alphabetical or time.Weekday's Sunday-first numbering.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

type temporalAgg struct {
	revenue  float64
	items    int
	invoices map[string]struct{}
}

func newTemporalAgg() *temporalAgg {
	return &temporalAgg{invoices: make(map[string]struct{})}
}

func (a *temporalAgg) add(row dataprocessing.CleanedTransaction) {
	a.revenue += row.Revenue
	a.items += row.Quantity
	a.invoices[row.InvoiceNo] = struct{}{}
}

// calculateTemporal runs the three independent grouping passes over the
// cleaned table: by calendar date, by weekday and by hour of day. Weekday
// and hourly are re-groupings of the same table, not derived from the daily
// result.
func (c *Calculator) calculateTemporal(ctx context.Context, rows []dataprocessing.CleanedTransaction) ([]DailySales, []WeekdaySales, []HourlySales) {
	byDate := make(map[time.Time]*temporalAgg)
	byWeekday := make(map[time.Weekday]*temporalAgg)
	byHour := make(map[int]*temporalAgg)

	for _, row := range rows {
		date := time.Date(row.InvoiceDate.Year(), row.InvoiceDate.Month(), row.InvoiceDate.Day(),
			0, 0, 0, 0, row.InvoiceDate.Location())

		if byDate[date] == nil {
			byDate[date] = newTemporalAgg()
		}
		byDate[date].add(row)

		weekday := row.InvoiceDate.Weekday()
		if byWeekday[weekday] == nil {
			byWeekday[weekday] = newTemporalAgg()
		}
		byWeekday[weekday].add(row)

		hour := row.InvoiceDate.Hour()
		if byHour[hour] == nil {
			byHour[hour] = newTemporalAgg()
		}
		byHour[hour].add(row)
	}

	daily := make([]DailySales, 0, len(byDate))
	for date, agg := range byDate {
		daily = append(daily, DailySales{
			Date:    date,
			Revenue: agg.revenue,
			Orders:  len(agg.invoices),
			Items:   agg.items,
		})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	// Monday through Sunday, only weekdays present in the data
	weekly := make([]WeekdaySales, 0, len(byWeekday))
	for _, weekday := range weekdayOrder {
		agg, ok := byWeekday[weekday]
		if !ok {
			continue
		}
		weekly = append(weekly, WeekdaySales{
			Weekday: weekday,
			Revenue: agg.revenue,
			Orders:  len(agg.invoices),
			Items:   agg.items,
		})
	}

	hourly := make([]HourlySales, 0, len(byHour))
	for hour, agg := range byHour {
		hourly = append(hourly, HourlySales{
			Hour:    hour,
			Revenue: agg.revenue,
			Orders:  len(agg.invoices),
			Items:   agg.items,
		})
	}
	sort.Slice(hourly, func(i, j int) bool { return hourly[i].Hour < hourly[j].Hour })

	c.logger.DebugContext(ctx, "temporal aggregates computed",
		"days", len(daily),
		"weekdays", len(weekly),
		"hours", len(hourly),
	)

	return daily, weekly, hourly
}
