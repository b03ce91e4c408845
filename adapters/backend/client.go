// Package backend implements the analytics backend ports over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"insightflow/domain/core"
	"insightflow/domain/insight"
	"insightflow/domain/leaderboard"
	"insightflow/domain/narrative"
	"insightflow/domain/predict"
	"insightflow/domain/profile"
	"insightflow/ports"
)

// Client talks to the analytics backend. One instance is shared by every
// stage; it holds no per-session state.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	trainClient *http.Client
}

var _ ports.Backend = (*Client)(nil)

// NewClient creates a backend client. The timeout bounds each individual
// request; training runs get the same bound until WithTrainTimeout widens it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	log.Printf("[BackendClient] Initializing client with baseURL=%s, timeout=%v", baseURL, timeout)
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		trainClient: &http.Client{Timeout: timeout},
	}
}

// WithTrainTimeout sets a separate bound for training requests, which
// routinely outlive every other call.
func (c *Client) WithTrainTimeout(timeout time.Duration) *Client {
	c.trainClient = &http.Client{Timeout: timeout}
	return c
}

// Upload sends one file as multipart form data and returns the dataset
// identifier the backend minted for it.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*profile.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/data/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result profile.UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if result.DatasetID == "" {
		return nil, fmt.Errorf("%w: upload response carried no dataset_id", core.ErrBackendRejected)
	}
	log.Printf("[BackendClient] Uploaded %s as dataset %s", filename, result.DatasetID)
	return &result, nil
}

// Profile fetches the dataset profile.
func (c *Client) Profile(ctx context.Context, dataset core.DatasetID) (*profile.DatasetProfile, error) {
	var result profile.DatasetProfile
	if err := c.getJSON(ctx, "/data/profile/"+url.PathEscape(dataset.String()), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Scatter fetches a bivariate sample. The backend accepts the same column on
// both axes.
func (c *Client) Scatter(ctx context.Context, dataset core.DatasetID, x, y string) ([]profile.ScatterPoint, error) {
	path := fmt.Sprintf("/data/scatter/%s?x=%s&y=%s",
		url.PathEscape(dataset.String()), url.QueryEscape(x), url.QueryEscape(y))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.doRaw(req)
	if err != nil {
		return nil, err
	}

	// Tolerate both {"points": [...]} and a bare point list.
	var envelope scatterResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		var bare []scatterPoint
		if err := json.Unmarshal(body, &bare); err != nil {
			return nil, fmt.Errorf("decode scatter response: %w", err)
		}
		envelope.Points = bare
	}

	points := make([]profile.ScatterPoint, 0, len(envelope.Points))
	for _, p := range envelope.Points {
		points = append(points, profile.ScatterPoint{X: p.X, Y: p.Y})
	}
	return points, nil
}

// Train kicks off the backend's model competition for a target column.
func (c *Client) Train(ctx context.Context, dataset core.DatasetID, target string) (*leaderboard.TrainingOutcome, error) {
	var result trainResponse
	if err := c.postJSONClient(ctx, c.trainClient, "/train/", trainRequest{
		DatasetID:    dataset.String(),
		TargetColumn: target,
	}, &result); err != nil {
		return nil, err
	}

	return &leaderboard.TrainingOutcome{
		ProblemType:    result.ProblemType,
		Results:        result.Results,
		BestModel:      result.BestModel,
		DroppedColumns: result.DroppedColumns,
	}, nil
}

// Explain fetches feature importance for a trained model.
func (c *Client) Explain(ctx context.Context, dataset core.DatasetID, model core.ModelID) (*insight.Explanation, error) {
	var result insight.Explanation
	if err := c.postJSON(ctx, "/explain/", explainRequest{
		DatasetID: dataset.String(),
		ModelID:   model.String(),
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summarize requests narrative prose for a context string and query.
func (c *Client) Summarize(ctx context.Context, contextText, query string) (*insight.Summary, error) {
	var result insight.Summary
	if err := c.postJSON(ctx, "/insight/", insightRequest{
		Context: contextText,
		Query:   query,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Metadata fetches and normalizes the prediction input schema for a model.
func (c *Client) Metadata(ctx context.Context, model core.ModelID) (*ports.PredictMetadata, error) {
	var result metadataResponse
	if err := c.getJSON(ctx, "/predict/metadata/"+url.PathEscape(model.String()), &result); err != nil {
		return nil, err
	}
	return &ports.PredictMetadata{
		Target: result.Target,
		Schema: result.resolveSchema(),
	}, nil
}

// Predict requests a single-record prediction.
func (c *Client) Predict(ctx context.Context, model core.ModelID, features map[string]interface{}) (*predict.Prediction, error) {
	var result predict.Prediction
	if err := c.postJSON(ctx, "/predict/", predictRequest{
		ModelID:  model.String(),
		Features: features,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Story fetches the dataset narrative and normalizes its shape.
func (c *Client) Story(ctx context.Context, dataset core.DatasetID) ([]narrative.Section, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/story/"+url.PathEscape(dataset.String()), nil)
	if err != nil {
		return nil, err
	}
	body, err := c.doRaw(req)
	if err != nil {
		return nil, err
	}
	return narrative.ParseResponse(body)
}

// postJSON sends a JSON body and decodes a JSON response.
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	return c.postJSONClient(ctx, c.httpClient, path, payload, out)
}

func (c *Client) postJSONClient(ctx context.Context, client *http.Client, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.doRawClient(client, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// getJSON fetches and decodes a JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	body, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// doRaw executes a request, classifying failures into the two backend error
// families: transport problems and rejected requests.
func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	return c.doRawClient(c.httpClient, req)
}

func (c *Client) doRawClient(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[BackendClient] Transport error on %s %s: %v", req.Method, req.URL.Path, err)
		return nil, fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", core.ErrBackendUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parseDetail(body)
		log.Printf("[BackendClient] %s %s failed with status %d: %s", req.Method, req.URL.Path, resp.StatusCode, detail)
		if detail != "" {
			return nil, fmt.Errorf("%w: %s (status %d)", core.ErrBackendRejected, detail, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", core.ErrBackendRejected, resp.StatusCode)
	}
	return body, nil
}
