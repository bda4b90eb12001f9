package exporter

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/kpi"
)

// writeWorkbook renders the full report into a single Excel workbook, one
// sheet per result set. The workbook is a convenience artifact for analysts;
// the CSV/JSON files remain the rendering contract.
func (s *ResultSink) writeWorkbook(report *kpi.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeGlobalSheet(f, report.Global); err != nil {
		return err
	}
	if err := writeProductsSheet(f, report.Products); err != nil {
		return err
	}
	if err := writePriceSheet(f, report.PriceCategories); err != nil {
		return err
	}
	if err := writeCustomersSheet(f, report.Customers); err != nil {
		return err
	}
	if err := writeSegmentsSheet(f, report.SegmentStats); err != nil {
		return err
	}
	if err := writeTemporalSheets(f, report); err != nil {
		return err
	}

	// Replace the default sheet with the KPI overview
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(s.resultsDir, FileWorkbook))
}

func writeGlobalSheet(f *excelize.File, global kpi.GlobalKPIs) error {
	const sheet = "Global KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", global.TotalRevenue},
		{"Total Orders", global.TotalOrders},
		{"Total Customers", global.TotalCustomers},
		{"Total Products", global.TotalProducts},
		{"Average Order Value", global.AverageOrderValue},
		{"Average Items Per Order", global.AverageItemsPerOrder},
	}
	return writeSheetRows(f, sheet, rows)
}

func writeProductsSheet(f *excelize.File, products []kpi.ProductPerformance) error {
	const sheet = "Top Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"StockCode", "Description", "TotalRevenue", "TotalQuantity", "NumberOrders", "AveragePrice"},
	}
	for _, p := range products {
		rows = append(rows, []interface{}{
			p.StockCode, p.Description, p.TotalRevenue, p.TotalQuantity, p.NumberOrders, p.AveragePrice,
		})
	}
	return writeSheetRows(f, sheet, rows)
}

func writePriceSheet(f *excelize.File, stats []kpi.PriceCategoryStats) error {
	const sheet = "Price Categories"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"PriceCategory", "NumberProducts", "NumberOrders", "TotalRevenue", "AveragePrice"},
	}
	for _, b := range stats {
		rows = append(rows, []interface{}{
			string(b.Category), b.NumberProducts, b.NumberOrders, b.TotalRevenue, b.AveragePrice,
		})
	}
	return writeSheetRows(f, sheet, rows)
}

func writeCustomersSheet(f *excelize.File, customers []kpi.CustomerMetrics) error {
	const sheet = "Customer Metrics"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"CustomerID", "Recency", "Frequency", "MonetaryValue", "RFM_Score", "RFM_Segment"},
	}
	for _, m := range customers {
		rows = append(rows, []interface{}{
			m.CustomerID, m.Recency, m.Frequency, m.Monetary, m.RFMScore, string(m.Segment),
		})
	}
	return writeSheetRows(f, sheet, rows)
}

func writeSegmentsSheet(f *excelize.File, stats []kpi.SegmentStat) error {
	const sheet = "Segments"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"RFM_Segment", "NumberCustomers", "AverageMonetary"},
	}
	for _, seg := range stats {
		rows = append(rows, []interface{}{
			string(seg.Segment), seg.NumberCustomers, seg.AverageMonetary,
		})
	}
	return writeSheetRows(f, sheet, rows)
}

func writeTemporalSheets(f *excelize.File, report *kpi.Report) error {
	dailyRows := [][]interface{}{{"Date", "Revenue", "Orders", "Items"}}
	for _, d := range report.Daily {
		dailyRows = append(dailyRows, []interface{}{d.Date.Format("2006-01-02"), d.Revenue, d.Orders, d.Items})
	}

	weekdayRows := [][]interface{}{{"WeekDay", "Revenue", "Orders", "Items"}}
	for _, w := range report.Weekday {
		weekdayRows = append(weekdayRows, []interface{}{w.Weekday.String(), w.Revenue, w.Orders, w.Items})
	}

	hourlyRows := [][]interface{}{{"Hour", "Revenue", "Orders", "Items"}}
	for _, h := range report.Hourly {
		hourlyRows = append(hourlyRows, []interface{}{h.Hour, h.Revenue, h.Orders, h.Items})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"Daily Sales", dailyRows},
		{"Weekday Sales", weekdayRows},
		{"Hourly Sales", hourlyRows},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		if err := writeSheetRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}
	return nil
}

// writeSheetRows writes rows starting at A1
func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
