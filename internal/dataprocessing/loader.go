package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"retailcli/internal/errors"
)

// RequiredColumns is the fixed input schema. Extra columns are ignored;
// a missing required column aborts the load.
var RequiredColumns = []string{
	"InvoiceNo",
	"StockCode",
	"Description",
	"Quantity",
	"InvoiceDate",
	"UnitPrice",
	"CustomerID",
	"Country",
}

// dateFormats are the known timestamp layouts, tried in order.
// The export ships day-first timestamps with or without seconds; ISO
// timestamps are accepted as well.
var dateFormats = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
}

const maxBadDateSamples = 5

// columnIndex maps required column names to their positions in the header
type columnIndex map[string]int

// LoadFile reads the raw retail CSV at path into a slice of transactions.
// Missing required columns or unparseable numeric cells fail with a schema
// error; rows whose timestamp matches no known format are dropped and
// counted in the returned LoadReport.
func LoadFile(path string) ([]Transaction, *LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewNotFoundError(fmt.Sprintf("input file %s", path))
	}
	defer file.Close()

	return Load(file)
}

// Load reads raw retail CSV data from r. See LoadFile.
func Load(r io.Reader) ([]Transaction, *LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.NewSchemaError("failed to read CSV header", err)
	}

	// Remove BOM if present
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns, ignored, err := indexColumns(header)
	if err != nil {
		return nil, nil, err
	}

	report := &LoadReport{IgnoredColumns: ignored}
	var transactions []Transaction

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewSchemaError(fmt.Sprintf("malformed CSV record at row %d", rowNum), err)
		}

		report.TotalRows++

		tx, ok, err := parseRow(record, columns, rowNum, report)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		transactions = append(transactions, tx)
		report.LoadedRows++
	}

	if report.DroppedDates > 0 {
		slog.Warn("dropped rows with unparseable dates",
			slog.Int("dropped", report.DroppedDates),
			slog.Any("samples", report.SampleBadDates))
	}

	slog.Info("loaded raw transactions",
		slog.Int("total_rows", report.TotalRows),
		slog.Int("loaded_rows", report.LoadedRows))

	return transactions, report, nil
}

// indexColumns validates the header against the required schema
func indexColumns(header []string) (columnIndex, []string, error) {
	index := make(columnIndex, len(RequiredColumns))
	seen := make(map[string]bool, len(header))

	for i, name := range header {
		name = strings.TrimSpace(name)
		seen[name] = true
		index[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.NewSchemaError(
			fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")), nil)
	}

	var ignored []string
	required := make(map[string]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		required[col] = true
	}
	for name := range seen {
		if !required[name] {
			ignored = append(ignored, name)
		}
	}

	return index, ignored, nil
}

// parseRow converts one CSV record into a Transaction. Returns ok=false when
// the row is dropped for an unparseable date.
func parseRow(record []string, columns columnIndex, rowNum int, report *LoadReport) (Transaction, bool, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	quantity, err := strconv.Atoi(field("Quantity"))
	if err != nil {
		return Transaction{}, false, errors.NewSchemaError(
			fmt.Sprintf("invalid Quantity %q at row %d", field("Quantity"), rowNum), err)
	}

	// The export may carry European decimal commas
	priceText := strings.ReplaceAll(field("UnitPrice"), ",", ".")
	unitPrice, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return Transaction{}, false, errors.NewSchemaError(
			fmt.Sprintf("invalid UnitPrice %q at row %d", field("UnitPrice"), rowNum), err)
	}

	invoiceDate, ok := parseDate(field("InvoiceDate"))
	if !ok {
		report.DroppedDates++
		if len(report.SampleBadDates) < maxBadDateSamples {
			report.SampleBadDates = append(report.SampleBadDates, field("InvoiceDate"))
		}
		return Transaction{}, false, nil
	}

	return Transaction{
		InvoiceNo:   field("InvoiceNo"),
		StockCode:   field("StockCode"),
		Description: field("Description"),
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  normalizeCustomerID(field("CustomerID")),
		Country:     field("Country"),
	}, true, nil
}

// parseDate tries each known timestamp layout in order
func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeCustomerID strips the float suffix some exports attach to
// customer ids ("17850.0" becomes "17850")
func normalizeCustomerID(id string) string {
	if id == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return id
}
