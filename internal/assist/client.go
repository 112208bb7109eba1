package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mailintel/config"
	"mailintel/internal/analysis"
	"mailintel/internal/model"
	"mailintel/pkg/circuitbreaker"
	"mailintel/pkg/metrics"
	"mailintel/pkg/trace"
)

// Client calls the external AI assistant over HTTP. It implements both the
// per-email analysis.AssistClient and the digest narrative client. Every
// failure mode surfaces as an error; fallback is the caller's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker // 熔断器
	logger     *zap.Logger
}

func NewClient(cfg config.AssistConfig, logger *zap.Logger) *Client {
	// 更严格的阈值以确保快速失败；打开期间请求直接走规则路径
	cbConfig := circuitbreaker.Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 2,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		cb:     circuitbreaker.NewCircuitBreaker(cbConfig),
		logger: logger,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type narrativeRequest struct {
	Summary model.DigestSummary `json:"summary"`
}

type narrativeResponse struct {
	Narrative string `json:"narrative"`
}

// AnalyzeEmail sends the email text for remote analysis.
func (c *Client) AnalyzeEmail(ctx context.Context, text string) (*analysis.AssistResult, error) {
	var result analysis.AssistResult
	err := c.post(ctx, "/analyze", analyzeRequest{Text: text}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DigestNarrative asks the assistant for digest prose.
func (c *Client) DigestNarrative(ctx context.Context, summary model.DigestSummary) (string, error) {
	var resp narrativeResponse
	err := c.post(ctx, "/digest", narrativeRequest{Summary: summary}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Narrative, nil
}

// post runs a JSON round trip through the circuit breaker, recording call
// latency per endpoint and status.
func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	return c.cb.Execute(func() error {
		start := time.Now()

		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(b))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		// 传播 trace_id
		if traceID := trace.FromContext(ctx); traceID != "" {
			req.Header.Set(trace.HeaderName(), traceID)
		}

		resp, err := c.httpClient.Do(req)
		latency := time.Since(start)

		if err != nil {
			metrics.RecordAssistCallLatency(endpoint, "error", latency)
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			status := fmt.Sprintf("%d", resp.StatusCode)
			if resp.StatusCode >= 500 {
				status = "5xx"
			}
			metrics.RecordAssistCallLatency(endpoint, status, latency)
			return fmt.Errorf("assist service error: %d", resp.StatusCode)
		}

		metrics.RecordAssistCallLatency(endpoint, "success", latency)

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode assist response: %w", err)
		}
		return nil
	})
}
