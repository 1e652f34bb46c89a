package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/util"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// APIClientConfig describes one upstream JSON API. Authentication is either a
// static header (HeaderKey) or a static query parameter (QueryKey).
type APIClientConfig struct {
	Name        string
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client
	HeaderKey   string
	HeaderValue string
	QueryKey    string
	QueryValue  string
}

// APIClient performs JSON requests against a single upstream and normalizes
// failures into pkg/errors types. It never retries; while the upstream keeps
// failing the breaker rejects calls up front.
type APIClient struct {
	cfg        APIClientConfig
	httpClient *http.Client
	breaker    *util.CircuitBreaker
	logger     *zap.Logger
}

func NewAPIClient(cfg APIClientConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = constants.APIConfig.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &APIClient{
		cfg:        cfg,
		httpClient: httpClient,
		breaker: util.NewCircuitBreaker(
			cfg.Name,
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger,
		),
		logger: logger.With(zap.String("api", cfg.Name)),
	}
}

// Do sends the request and returns the raw response body of a 2xx response.
func (c *APIClient) Do(ctx context.Context, method, path string, params url.Values, reqBody any) ([]byte, error) {
	reqURL := c.buildURL(path, params)

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": c.redact(reqURL),
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": c.redact(reqURL),
		}).WithCause(err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.HeaderKey != "" {
		req.Header.Set(c.cfg.HeaderKey, c.cfg.HeaderValue)
	}

	// every admitted call must report back to the breaker
	if !c.breaker.CanExecute() {
		c.logger.Warn("Circuit breaker is open", zap.Duration("retry_after", c.breaker.RetryAfter()))
		return nil, errors.NewServiceError("upstream unavailable", c.cfg.Name, method+" "+path, errors.ErrCircuitOpen)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, errors.NewAPIError("request failed", 503, map[string]any{
			"url": c.redact(reqURL),
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, constants.APIConfig.MaxErrorBodyBytes))
		if resp.StatusCode >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}

		c.logger.Warn("Upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, errors.NewAPIError(
			fmt.Sprintf("%s API error: %s", c.cfg.Name, resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  c.redact(reqURL),
				"body": string(bodyBytes),
			},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, errors.NewAPIError("failed to read response", 502, map[string]any{
			"url": c.redact(reqURL),
		}).WithCause(err)
	}

	c.breaker.RecordSuccess()
	return body, nil
}

// DoJSON is Do followed by decoding the body into respBody. An empty body is a
// decode failure.
func (c *APIClient) DoJSON(ctx context.Context, method, path string, params url.Values, reqBody, respBody any) error {
	body, err := c.Do(ctx, method, path, params, reqBody)
	if err != nil {
		return err
	}
	if respBody == nil {
		return nil
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return errors.NewAPIError("failed to decode response", 502, map[string]any{
			"path": path,
		}).WithCause(err)
	}
	return nil
}

func (c *APIClient) buildURL(path string, params url.Values) string {
	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	if c.cfg.QueryKey != "" {
		query.Set(c.cfg.QueryKey, c.cfg.QueryValue)
	}

	reqURL := c.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	return reqURL
}

// redact hides the query credential in logged urls.
func (c *APIClient) redact(reqURL string) string {
	if c.cfg.QueryKey == "" || c.cfg.QueryValue == "" {
		return reqURL
	}
	return strings.ReplaceAll(reqURL, url.QueryEscape(c.cfg.QueryValue), "***")
}
