package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"sentimark/internal/model"
)

func TestViewStateEditSerialization(t *testing.T) {
	v := NewViewState()

	if err := v.StartEdit("a", model.SentimentPositive); err != nil {
		t.Fatalf("StartEdit failed: %v", err)
	}
	if err := v.StartEdit("b", model.SentimentNegative); err != ErrEditInProgress {
		t.Fatalf("second StartEdit err = %v, want ErrEditInProgress", err)
	}

	v.CancelEdit()
	if v.Edit != nil {
		t.Fatal("CancelEdit left the buffer")
	}
	if err := v.StartEdit("b", model.SentimentNegative); err != nil {
		t.Fatalf("StartEdit after cancel failed: %v", err)
	}
}

func TestViewStateSetFiltersResetsPage(t *testing.T) {
	v := NewViewState()
	v.Page = 4

	v.SetFilters(Filters{Source: "twitter"})
	if v.Page != 1 {
		t.Fatalf("page = %d after filter change, want 1", v.Page)
	}
	if v.ListFilter().Source != "twitter" {
		t.Fatalf("filter not carried: %+v", v.ListFilter())
	}
}

func TestViewStateSerializable(t *testing.T) {
	v := NewViewState()
	v.SetFilters(Filters{Sentiment: "negative"})
	if err := v.StartEdit("x", model.SentimentNeutral); err != nil {
		t.Fatalf("StartEdit failed: %v", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal view state: %v", err)
	}

	var restored ViewState
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal view state: %v", err)
	}
	if restored.Filters.Sentiment != "negative" || restored.Edit == nil || restored.Edit.ItemID != "x" {
		t.Fatalf("round trip lost state: %+v", restored)
	}
}

func TestSubmitCorrectionRefetchesAndCloses(t *testing.T) {
	var listCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			corrected := model.SentimentPositive
			json.NewEncoder(w).Encode(model.TextItem{
				ID:    "a",
				Label: model.Label{Predicted: model.SentimentNeutral, Corrected: &corrected},
			})
		case r.URL.Path == "/texts":
			listCalls.Add(1)
			json.NewEncoder(w).Encode(model.PaginatedResponse{Total: 1, Page: 1, PageSize: 20, TotalPages: 1})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(NewClient(srv.URL))
	if err := c.State.StartEdit("a", model.SentimentPositive); err != nil {
		t.Fatalf("StartEdit failed: %v", err)
	}

	item, err := c.SubmitCorrection(context.Background())
	if err != nil {
		t.Fatalf("SubmitCorrection failed: %v", err)
	}
	if item.Effective() != model.SentimentPositive {
		t.Fatalf("effective = %q", item.Effective())
	}
	if c.State.Edit != nil {
		t.Fatal("edit session still open after successful correction")
	}
	if listCalls.Load() != 1 {
		t.Fatalf("re-fetch calls = %d, want 1", listCalls.Load())
	}
}

func TestSubmitCorrectionKeepsSessionOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "text item a not found"})
	}))
	defer srv.Close()

	c := New(NewClient(srv.URL))
	if err := c.State.StartEdit("a", model.SentimentPositive); err != nil {
		t.Fatalf("StartEdit failed: %v", err)
	}

	if _, err := c.SubmitCorrection(context.Background()); err == nil {
		t.Fatal("SubmitCorrection should fail")
	}
	// The operator can retry the same action: the session survives.
	if c.State.Edit == nil {
		t.Fatal("edit session discarded on failure")
	}
}

func TestSubmitCorrectionWithoutSession(t *testing.T) {
	c := New(NewClient("http://127.0.0.1:0"))
	if _, err := c.SubmitCorrection(context.Background()); err != ErrNoEditSession {
		t.Fatalf("err = %v, want ErrNoEditSession", err)
	}
}

func TestEvaluateAsyncDeliversOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.EvaluationMetrics{MacroF1: 0.5})
	}))
	defer srv.Close()

	c := New(NewClient(srv.URL))
	ch := c.EvaluateAsync(context.Background())

	result, ok := <-ch
	if !ok {
		t.Fatal("channel closed before delivery")
	}
	if result.Err != nil || result.Metrics.MacroF1 != 0.5 {
		t.Fatalf("result = %+v", result)
	}

	if _, ok := <-ch; ok {
		t.Fatal("second delivery on a single-shot channel")
	}
}

func TestConsoleRefreshStaleResponse(t *testing.T) {
	// Two refreshes race: the console must render only the latest one's
	// result even when the older response lands last.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		total := 10
		if r.URL.Query().Get("source") == "b" {
			total = 20
		}
		json.NewEncoder(w).Encode(model.PaginatedResponse{Total: total, Page: 1, PageSize: 20, TotalPages: 1})
	}))
	defer srv.Close()

	c := New(NewClient(srv.URL))
	ctx := context.Background()

	// Dispatch A's generation, then let B dispatch and complete, then
	// complete A manually: simulates A resolving after B.
	completeA := c.fetcher.Dispatch()
	pageA, err := c.Client.ListTexts(ctx, model.ListFilter{Source: "a"})
	if err != nil {
		t.Fatalf("ListTexts failed: %v", err)
	}

	c.State.SetFilters(Filters{Source: "b"})
	applied, err := c.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !applied {
		t.Fatal("latest refresh was not applied")
	}

	if completeA(*pageA) {
		t.Fatal("stale response overwrote the newer result")
	}

	page, ok := c.CurrentPage()
	if !ok || page.Total != 20 {
		t.Fatalf("rendered page total = %d, want B's 20", page.Total)
	}
}
