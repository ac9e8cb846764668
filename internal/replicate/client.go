package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.replicate.com"
	defaultModel        = "ideogram-ai/ideogram-v2a"
	defaultPollInterval = time.Second

	userAgent = "ideogram-ai-bot/1.0"
)

type Options struct {
	APIToken     string
	BaseURL      string
	Model        string
	PollInterval time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

type Client struct {
	apiToken     string
	baseURL      string
	model        string
	pollInterval time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiToken:     opts.APIToken,
		baseURL:      baseURL,
		model:        model,
		pollInterval: pollInterval,
		httpClient:   opts.HTTPClient,
		logger:       logger,
	}
}

// APIError is an error response from the Replicate API. Message is the
// upstream detail verbatim so it can be shown to the user unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("replicate API returned status %d", e.Status)
}

// Generate creates one prediction and blocks until it reaches a terminal
// state or ctx is done. The create call asks the API to wait synchronously;
// a prediction still running after that is polled.
func (c *Client) Generate(ctx context.Context, input Input) (Result, error) {
	if c.httpClient == nil {
		return Result{}, errors.New("http client is nil")
	}

	pred, err := c.createPrediction(ctx, input)
	if err != nil {
		return Result{}, err
	}

	for !pred.terminal() {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return Result{}, err
		}
		c.logger.Debug("prediction polled", "id", pred.ID, "status", pred.Status)
	}

	switch pred.Status {
	case "succeeded":
		url := pred.firstOutput()
		if url == "" {
			return Result{}, errors.New("no image was generated")
		}
		return Result{ID: pred.ID, ImageURL: url}, nil
	case "canceled":
		return Result{}, &APIError{Message: "prediction was canceled"}
	default:
		msg := strings.TrimSpace(pred.Error)
		if msg == "" {
			msg = "prediction failed"
		}
		return Result{}, &APIError{Message: msg}
	}
}

func (c *Client) createPrediction(ctx context.Context, input Input) (prediction, error) {
	body, err := json.Marshal(predictionRequest{Input: input})
	if err != nil {
		return prediction{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s/predictions", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("prefer", "wait")

	return c.do(req)
}

func (c *Client) getPrediction(ctx context.Context, id string) (prediction, error) {
	url := fmt.Sprintf("%s/v1/predictions/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return prediction{}, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (prediction, error) {
	req.Header.Set("authorization", "Token "+c.apiToken)
	req.Header.Set("user-agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prediction{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return prediction{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr errorBody
		if err := json.Unmarshal(rawBody, &apiErr); err == nil && apiErr.Detail != "" {
			return prediction{}, &APIError{Status: resp.StatusCode, Message: apiErr.Detail}
		}
		return prediction{}, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(rawBody))}
	}

	var pred prediction
	if err := json.Unmarshal(rawBody, &pred); err != nil {
		return prediction{}, fmt.Errorf("decode response: %w", err)
	}
	return pred, nil
}

type predictionRequest struct {
	Input Input `json:"input"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (p prediction) terminal() bool {
	switch p.Status {
	case "succeeded", "failed", "canceled":
		return true
	}
	return false
}

// firstOutput handles both output shapes the API uses: a bare URL string and
// an array of URLs.
func (p prediction) firstOutput() string {
	if len(p.Output) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}
