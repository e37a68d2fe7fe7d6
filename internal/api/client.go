package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/smartclinic/clinic-ops/internal/observability/metrics"
	"github.com/smartclinic/clinic-ops/pkg/logging"
)

const defaultTimeout = 15 * time.Second

var tracer = otel.Tracer("clinicops.internal.api")

// Client is the shared HTTP transport for every remote collection and the
// chat service. It owns the base URL, the bearer token, and the mapping of
// transport failures onto RemoteError.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.GatewayMetrics
}

// ClientConfig configures the shared transport.
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *logging.Logger
	Metrics *metrics.GatewayMetrics
}

// NewClient creates the shared transport. BaseURL is required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    cfg.Metrics,
	}, nil
}

// detailBody is the error envelope the backend uses for failures.
type detailBody struct {
	Detail string `json:"detail"`
}

// do issues one request and decodes the response into out (when non-nil).
// op names the operation for error messages, spans, and metrics. Any failure
// is returned as a *RemoteError; out is only written on success.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	ctx, span := tracer.Start(ctx, "api."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	start := time.Now()
	err := c.roundTrip(ctx, op, method, path, in, out)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	c.metrics.ObserveRequest(op, status, time.Since(start).Seconds())
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, Message: "could not encode request", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RemoteError{Op: op, Message: "could not build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed", "op", op, "error", err)
		return &RemoteError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "could not read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "request failed"
		var detail detailBody
		if jsonErr := json.Unmarshal(respBody, &detail); jsonErr == nil && strings.TrimSpace(detail.Detail) != "" {
			msg = detail.Detail
		}
		c.logger.Error("gateway request rejected", "op", op, "status", resp.StatusCode, "detail", msg)
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "could not decode response", Err: err}
		}
	}
	return nil
}
