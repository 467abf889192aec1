package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sentimark/internal/model"
)

// Client is the console's typed view of the backend HTTP contract. Every
// method either returns a fully populated value or a single error, never a
// partial result.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches an editor identity to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges credentials for an editor token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp model.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login",
		model.LoginRequest{Username: username, Password: password},
		&resp, "login failed")
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// UploadResult is the response of both upload endpoints.
type UploadResult struct {
	RecordsProcessed int `json:"records_processed"`
}

// UploadDataset sends a raw corpus CSV (columns source,text).
func (c *Client) UploadDataset(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	return c.upload(ctx, "/upload-dataset", filename, file, "failed to upload dataset")
}

// UploadValidation sends a ground-truth CSV (columns text,sentiment).
func (c *Client) UploadValidation(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	return c.upload(ctx, "/upload-validation", filename, file, "failed to upload validation dataset")
}

// ListTexts fetches one page of the corpus. Filter values are validated
// before dispatch so a malformed filter never leaves the console.
func (c *Client) ListTexts(ctx context.Context, f model.ListFilter) (*model.PaginatedResponse, error) {
	if err := validateFilter(f.Sentiment, f.MinConfidence); err != nil {
		return nil, err
	}

	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	if f.Source != "" {
		params.Set("source", f.Source)
	}
	if f.Sentiment != "" {
		params.Set("sentiment", f.Sentiment)
	}
	if f.MinConfidence != nil {
		params.Set("min_confidence", strconv.FormatFloat(*f.MinConfidence, 'f', -1, 64))
	}

	path := "/texts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var page model.PaginatedResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page, "failed to fetch texts"); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search fetches one page under the discovery filters.
func (c *Client) Search(ctx context.Context, q model.SearchQuery) (*model.PaginatedResponse, error) {
	if err := validateFilter(q.Sentiment, q.MinConfidence); err != nil {
		return nil, err
	}

	var page model.PaginatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/search", q, &page, "search failed"); err != nil {
		return nil, err
	}
	return &page, nil
}

// CorrectText applies a human override to one record's label.
func (c *Client) CorrectText(ctx context.Context, id string, s model.Sentiment) (*model.TextItem, error) {
	if !s.Valid() {
		return nil, &model.ValidationError{Detail: fmt.Sprintf("unknown sentiment %q", s)}
	}

	var item model.TextItem
	body := map[string]model.Sentiment{"corrected_sentiment": s}
	if err := c.doJSON(ctx, http.MethodPut, "/texts/"+url.PathEscape(id), body, &item, "failed to update text"); err != nil {
		return nil, err
	}
	return &item, nil
}

// History fetches the correction audit trail for one record.
func (c *Client) History(ctx context.Context, id string) ([]model.EditRecord, error) {
	var records []model.EditRecord
	path := "/texts/" + url.PathEscape(id) + "/history"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records, "failed to fetch edit history"); err != nil {
		return nil, err
	}
	return records, nil
}

// Statistics fetches the corpus-wide aggregates.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	if err := c.doJSON(ctx, http.MethodGet, "/statistics", nil, &stats, "failed to fetch statistics"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Evaluate triggers a fresh evaluation run on the backend.
func (c *Client) Evaluate(ctx context.Context) (*model.EvaluationMetrics, error) {
	var metrics model.EvaluationMetrics
	if err := c.doJSON(ctx, http.MethodPost, "/evaluate", nil, &metrics, "evaluation failed"); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Datasets fetches the upload registry.
func (c *Client) Datasets(ctx context.Context) ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := c.doJSON(ctx, http.MethodGet, "/datasets", nil, &datasets, "failed to fetch datasets"); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Export downloads the corpus CSV into w. The payload is buffered so a
// failed download never leaves a partial file behind.
func (c *Client) Export(ctx context.Context, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, "/export?format=csv", "", nil, "export failed")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return &TransportError{Fallback: "export failed", Err: err}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, fallback string) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &body, fallback)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}
	return &result, nil
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}, fallback string) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Fallback: fallback, Err: err}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, contentType, body, fallback)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Fallback: fallback, Err: err}
	}
	return nil
}

// do performs the request and normalizes failures into the error taxonomy:
// a non-2xx with a detail body becomes a ServerError, everything else a
// TransportError carrying the endpoint's fixed fallback message.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, fallback string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Fallback: fallback, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Detail != "" {
		return nil, &ServerError{StatusCode: resp.StatusCode, Detail: errBody.Detail}
	}
	return nil, &TransportError{Fallback: fallback, Err: fmt.Errorf("status %d", resp.StatusCode)}
}

func validateFilter(sentiment string, minConfidence *float64) error {
	if sentiment != "" {
		if _, err := model.ParseSentiment(sentiment); err != nil {
			return err
		}
	}
	if minConfidence != nil && (*minConfidence < 0 || *minConfidence > 1) {
		return &model.ValidationError{Detail: "min_confidence must be within [0, 1]"}
	}
	return nil
}
