package iris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	replyPath  = "/reply"
	configPath = "/config"
)

// Client sends replies through the Iris gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = constants.APIConfig.DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "iris")),
	}
}

// SendMessage posts text to room as a plain text reply. Empty rooms or texts
// are refused before any request is made.
func (c *Client) SendMessage(ctx context.Context, room, message string) error {
	if strings.TrimSpace(room) == "" {
		return errors.NewValidationError("reply room is empty", "room", room)
	}
	if message == "" {
		return errors.NewValidationError("reply text is empty", "data", message)
	}

	reply := ReplyRequest{Type: "text", Room: room, Data: message}
	if err := c.call(ctx, http.MethodPost, replyPath, reply, nil); err != nil {
		c.logger.Error("Failed to send message", zap.String("room", room), zap.Error(err))
		return err
	}
	return nil
}

// GetConfig fetches the gateway's runtime configuration.
func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := c.call(ctx, http.MethodGet, configPath, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Ping reports whether the gateway answers its config endpoint.
func (c *Client) Ping(ctx context.Context) bool {
	if _, err := c.GetConfig(ctx); err != nil {
		c.logger.Debug("Gateway ping failed", zap.Error(err))
		return false
	}
	return true
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	endpoint := c.baseURL + path
	fields := map[string]any{"url": endpoint}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.NewAPIError("encode gateway request", 400, fields).WithCause(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return errors.NewAPIError("build gateway request", 500, fields).WithCause(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("gateway unreachable", 503, fields).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, constants.APIConfig.MaxErrorBodyBytes))
		fields["body"] = string(snippet)
		return errors.NewAPIError(fmt.Sprintf("gateway %s %s: %s", method, path, resp.Status), resp.StatusCode, fields)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewAPIError("decode gateway response", 502, fields).WithCause(err)
	}
	return nil
}
