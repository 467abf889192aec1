package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"sentimark/internal/service"
)

// maxUploadBytes caps one uploaded CSV at 32 MiB.
const maxUploadBytes = 32 << 20

// DatasetsHandler handles the upload endpoints and the dataset registry.
type DatasetsHandler struct {
	datasetSvc *service.DatasetService
}

func NewDatasetsHandler(datasetSvc *service.DatasetService) *DatasetsHandler {
	return &DatasetsHandler{datasetSvc: datasetSvc}
}

// UploadDataset handles POST /upload-dataset
func (h *DatasetsHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	file, filename, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	processed, err := h.datasetSvc.IngestDataset(r.Context(), filename, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"records_processed": processed})
}

// UploadValidation handles POST /upload-validation
func (h *DatasetsHandler) UploadValidation(w http.ResponseWriter, r *http.Request) {
	file, filename, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	processed, err := h.datasetSvc.IngestValidation(r.Context(), filename, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"records_processed": processed})
}

// ListDatasets handles GET /datasets
func (h *DatasetsHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.datasetSvc.ListDatasets(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, datasets)
}

func formFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return nil, "", false
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		file.Close()
		writeError(w, http.StatusBadRequest, "only CSV files are allowed")
		return nil, "", false
	}

	return file, header.Filename, true
}
