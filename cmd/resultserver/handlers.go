package main

import (
	"encoding/csv"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retailcli/internal/exporter"
)

// servableArtifacts is the closed set of files the API exposes; anything
// else in the results directory (or a traversal attempt) is a 404.
var servableArtifacts = map[string]bool{
	exporter.FileGlobalKPIs:      true,
	exporter.FileCustomerMetrics: true,
	exporter.FilePriceAnalysis:   true,
	exporter.FileTopProducts:     true,
	exporter.FileTemporalDaily:   true,
	exporter.FileTemporalWeekday: true,
	exporter.FileTemporalHourly:  true,
	exporter.FileSegmentStats:    true,
	exporter.FileRunReport:       true,
}

type resultHandler struct {
	resultsDir string
}

func newResultHandler(resultsDir string) *resultHandler {
	return &resultHandler{resultsDir: resultsDir}
}

func (h *resultHandler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// listResults returns the servable artifacts currently present on disk
func (h *resultHandler) listResults(w http.ResponseWriter, r *http.Request) {
	var available []string
	for name := range servableArtifacts {
		if _, err := os.Stat(filepath.Join(h.resultsDir, name)); err == nil {
			available = append(available, name)
		}
	}

	render.JSON(w, r, map[string]interface{}{
		"results_dir": h.resultsDir,
		"artifacts":   available,
	})
}

// getResult serves one artifact: JSON files verbatim, CSV files converted
// to an array of column-keyed objects.
func (h *resultHandler) getResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !servableArtifacts[name] {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "unknown artifact"})
		return
	}

	path := filepath.Join(h.resultsDir, name)
	if _, err := os.Stat(path); err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "artifact not generated yet"})
		return
	}

	if strings.HasSuffix(name, ".json") {
		http.ServeFile(w, r, path)
		return
	}

	rows, err := readCSVAsObjects(path)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	render.JSON(w, r, rows)
}

// readCSVAsObjects maps each CSV data row onto its header columns
func readCSVAsObjects(path string) ([]map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(content), "\ufeff")))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
