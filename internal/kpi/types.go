package kpi

import (
	"time"
)

// GlobalKPIs is the flat record of business-wide metrics for one run.
// Averages are reported as zero when their denominator is zero so the
// downstream report rendering stays total.
type GlobalKPIs struct {
	TotalRevenue         float64 `json:"total_revenue"`
	TotalOrders          int     `json:"total_orders"`
	TotalCustomers       int     `json:"total_customers"`
	TotalProducts        int     `json:"total_products"`
	AverageOrderValue    float64 `json:"average_order_value"`
	AverageItemsPerOrder float64 `json:"average_items_per_order"`
}

// ProductPerformance aggregates one distinct product across all line items
type ProductPerformance struct {
	StockCode     string  `json:"stock_code"`
	Description   string  `json:"description"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalQuantity int     `json:"total_quantity"`
	NumberOrders  int     `json:"number_orders"`
	AveragePrice  float64 `json:"average_price"`
}

// PriceCategory is a fixed price-range partition label
type PriceCategory string

const (
	CategoryLow     PriceCategory = "Low"
	CategoryMedium  PriceCategory = "Medium"
	CategoryHigh    PriceCategory = "High"
	CategoryPremium PriceCategory = "Premium"
)

// PriceCategoryStats aggregates products and revenue for one price bucket
type PriceCategoryStats struct {
	Category       PriceCategory `json:"category"`
	NumberProducts int           `json:"number_products"`
	NumberOrders   int           `json:"number_orders"`
	TotalRevenue   float64       `json:"total_revenue"`
	AveragePrice   float64       `json:"average_price"`
}

// Segment is a human-readable RFM customer segment label
type Segment string

const (
	SegmentChampions Segment = "Champions"
	SegmentLoyal     Segment = "Loyal Customers"
	SegmentNew       Segment = "New Customers"
	SegmentAtRisk    Segment = "At Risk"
	SegmentDormant   Segment = "Dormant"
)

// CustomerMetrics holds the RFM raw values, band scores and segment for one
// customer. Higher band scores are always better; recency is scored in
// reverse so the most recently active customers land in the top band.
type CustomerMetrics struct {
	CustomerID     string  `json:"customer_id"`
	Recency        int     `json:"recency"` // days since last purchase
	Frequency      int     `json:"frequency"`
	Monetary       float64 `json:"monetary"`
	RecencyScore   int     `json:"recency_score"`
	FrequencyScore int     `json:"frequency_score"`
	MonetaryScore  int     `json:"monetary_score"`
	RFMScore       string  `json:"rfm_score"` // concatenated R/F/M band scores
	Segment        Segment `json:"segment"`
}

// SegmentStat summarizes one RFM segment
type SegmentStat struct {
	Segment         Segment `json:"segment"`
	NumberCustomers int     `json:"number_customers"`
	AverageMonetary float64 `json:"average_monetary"`
}

// DailySales aggregates revenue and orders for one calendar date
type DailySales struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
	Items   int       `json:"items"`
}

// WeekdaySales aggregates revenue and orders for one weekday
type WeekdaySales struct {
	Weekday time.Weekday `json:"weekday"`
	Revenue float64      `json:"revenue"`
	Orders  int          `json:"orders"`
	Items   int          `json:"items"`
}

// HourlySales aggregates revenue and orders for one hour of day
type HourlySales struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Items   int     `json:"items"`
}

// Report bundles every result set computed from one cleaned table
type Report struct {
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	ReferenceDate time.Time `json:"reference_date"` // recency anchor, max invoice date + 1 day

	Global          GlobalKPIs           `json:"global"`
	Products        []ProductPerformance `json:"products"`
	PriceCategories []PriceCategoryStats `json:"price_categories"`
	Customers       []CustomerMetrics    `json:"customers"`
	SegmentStats    []SegmentStat        `json:"segment_stats"`
	Daily           []DailySales         `json:"daily"`
	Weekday         []WeekdaySales       `json:"weekday"`
	Hourly          []HourlySales        `json:"hourly"`
}
