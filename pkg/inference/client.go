package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nerlens/nerlens/config"
	"github.com/nerlens/nerlens/internal"
	"github.com/nerlens/nerlens/pkg/models"
)

var log = internal.GetLogger()

const (
	requestIDHeader = "X-Request-ID"
	// maxResponseBytes bounds how much of an engine response is read.
	maxResponseBytes = 8 << 20
)

// Force compiler to validate that Client implements EntityRecognizer.
var _ models.EntityRecognizer = &Client{}

// Client calls a Hugging Face compatible token-classification endpoint.
// It is safe for concurrent use.
type Client struct {
	endpoint    string
	apiKey      string
	aggregation string
	httpClient  *http.Client
	executor    failsafe.Executor[[]models.Prediction]
}

// NewClient creates a Client posting to {server_url}/models/{model}. When
// cfg.Breaker.FailureThreshold is set, consecutive failures open a circuit
// breaker that fails calls fast for cfg.Breaker.Delay.
func NewClient(cfg config.InferenceConfig) *Client {
	return NewClientWithHTTP(cfg, NewRetryableHTTPClient(cfg.RetryMax, cfg.Timeout))
}

func NewClientWithHTTP(cfg config.InferenceConfig, httpClient *http.Client) *Client {
	var policies []failsafe.Policy[[]models.Prediction]
	if cfg.Breaker.FailureThreshold > 0 {
		breaker := circuitbreaker.Builder[[]models.Prediction]().
			HandleIf(func(_ []models.Prediction, err error) bool {
				return err != nil && !errors.Is(err, context.Canceled)
			}).
			WithFailureThreshold(cfg.Breaker.FailureThreshold).
			WithDelay(cfg.Breaker.Delay).
			Build()
		policies = append(policies, breaker)
	}

	return &Client{
		endpoint:    strings.TrimRight(cfg.ServerURL, "/") + "/models/" + cfg.Model,
		apiKey:      cfg.APIKey,
		aggregation: cfg.AggregationStrategy,
		httpClient:  httpClient,
		executor:    failsafe.NewExecutor[[]models.Prediction](policies...),
	}
}

type inferenceParameters struct {
	AggregationStrategy string `json:"aggregation_strategy,omitempty"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type engineError struct {
	Error string `json:"error"`
}

// Recognize sends text to the engine and returns its aggregated predictions
// as entity spans. Every failure, including malformed output, is returned as
// a *models.InferenceError.
func (c *Client) Recognize(ctx context.Context, text string) ([]models.EntitySpan, error) {
	predictions, err := c.executor.WithContext(ctx).Get(func() ([]models.Prediction, error) {
		return c.call(ctx, text)
	})
	if err != nil {
		return nil, models.NewInferenceError(err)
	}

	if err := validatePredictions(text, predictions); err != nil {
		return nil, &models.InferenceError{Detail: err.Error(), Err: err}
	}

	spans := make([]models.EntitySpan, len(predictions))
	for i, p := range predictions {
		spans[i] = p.Span()
	}
	return spans, nil
}

func (c *Client) call(ctx context.Context, text string) ([]models.Prediction, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs:     text,
		Parameters: inferenceParameters{AggregationStrategy: c.aggregation},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	requestID := middleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference engine request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, respBody)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal(respBody, &predictions); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, err)
	}

	log.Debugf("inference engine returned %d predictions for request %s", len(predictions), requestID)
	return predictions, nil
}

func statusError(status int, body []byte) error {
	var e engineError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		msg = e.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("inference engine returned status %d: %s", status, msg)
}
