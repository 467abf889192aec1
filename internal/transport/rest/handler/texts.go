package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sentimark/internal/model"
	"sentimark/internal/service"
	"sentimark/internal/transport/rest/middleware"
)

// TextsHandler handles the listing, search and correction endpoints.
type TextsHandler struct {
	textSvc *service.TextService
}

func NewTextsHandler(textSvc *service.TextService) *TextsHandler {
	return &TextsHandler{textSvc: textSvc}
}

// List handles GET /texts
func (h *TextsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	page, err := h.textSvc.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CorrectRequest is the PUT /texts/{id} body.
type CorrectRequest struct {
	CorrectedSentiment string `json:"corrected_sentiment"`
}

// Correct handles PUT /texts/{id}
func (h *TextsHandler) Correct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CorrectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	editor := middleware.GetEditorID(r.Context())
	item, err := h.textSvc.Correct(r.Context(), id, req.CorrectedSentiment, editor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// History handles GET /texts/{id}/history
func (h *TextsHandler) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	records, err := h.textSvc.History(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Search handles POST /search
func (h *TextsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var query model.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.textSvc.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func parseListFilter(r *http.Request) (model.ListFilter, error) {
	q := r.URL.Query()
	filter := model.ListFilter{
		Source:    q.Get("source"),
		Sentiment: q.Get("sentiment"),
	}

	var err error
	if filter.Page, err = intParam(q.Get("page"), "page"); err != nil {
		return model.ListFilter{}, err
	}
	if filter.PageSize, err = intParam(q.Get("page_size"), "page_size"); err != nil {
		return model.ListFilter{}, err
	}

	if raw := q.Get("min_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.ListFilter{}, &model.ValidationError{Detail: "min_confidence must be a number"}
		}
		filter.MinConfidence = &v
	}

	return filter, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ValidationError{Detail: name + " must be an integer"}
	}
	return v, nil
}
