package handler

import (
	"bytes"
	"net/http"

	"sentimark/internal/service"
)

// AnalyticsHandler handles statistics, evaluation and export.
type AnalyticsHandler struct {
	statsSvc  *service.StatsService
	evalSvc   *service.EvalService
	exportSvc *service.ExportService
}

func NewAnalyticsHandler(statsSvc *service.StatsService, evalSvc *service.EvalService, exportSvc *service.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		statsSvc:  statsSvc,
		evalSvc:   evalSvc,
		exportSvc: exportSvc,
	}
}

// Statistics handles GET /statistics
func (h *AnalyticsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Compute(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Evaluate handles POST /evaluate
func (h *AnalyticsHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.evalSvc.Evaluate(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// Export handles GET /export?format=csv
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" {
		writeError(w, http.StatusBadRequest, "unsupported export format: "+format)
		return
	}

	// Buffer the whole payload so a mid-export failure produces an error
	// response instead of a truncated file.
	var buf bytes.Buffer
	if err := h.exportSvc.WriteCSV(r.Context(), &buf); err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=sentiment_data.csv`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
