package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailintel/config"
	"mailintel/internal/model"
	"mailintel/pkg/circuitbreaker"
	"mailintel/pkg/trace"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.AssistConfig{BaseURL: baseURL, TimeoutSeconds: 5}, zap.NewNop())
}

func TestAnalyzeEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "urgent pipe burst", req.Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"urgencyScore": 88,
			"category": "urgent",
			"actionRequired": true,
			"suggestedActions": ["Call the customer"],
			"reasoning": "Burst pipe reported.",
			"businessRelevance": 75,
			"sentiment": "negative"
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	result, err := c.AnalyzeEmail(context.Background(), "urgent pipe burst")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Complete())
	assert.Equal(t, 88, *result.UrgencyScore)
	assert.Equal(t, "urgent", *result.Category)
	assert.Equal(t, []string{"Call the customer"}, result.SuggestedActions)
}

func TestAnalyzeEmailPropagatesTraceID(t *testing.T) {
	var gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get(trace.HeaderName())
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := trace.WithContext(context.Background(), "trace-123")

	_, err := c.AnalyzeEmail(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "trace-123", gotTrace)
}

func TestAnalyzeEmailServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	result, err := c.AnalyzeEmail(context.Background(), "hello")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assist service error: 500")
}

func TestAnalyzeEmailMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"urgencyScore": "not a number"`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.AnalyzeEmail(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode assist response")
}

func TestAnalyzeEmailContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.AnalyzeEmail(ctx, "hello")
	assert.Error(t, err)
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := c.AnalyzeEmail(context.Background(), "hello")
		require.Error(t, err)
		assert.NotErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	}

	// threshold reached: the breaker now rejects without touching the wire
	_, err := c.AnalyzeEmail(context.Background(), "hello")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDigestNarrative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/digest", r.URL.Path)

		var req struct {
			Summary model.DigestSummary `json:"summary"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 12, req.Summary.TotalEmails)

		w.Write([]byte(`{"narrative": "INSIGHTS:\n- Quiet day"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	narrative, err := c.DigestNarrative(context.Background(), model.DigestSummary{TotalEmails: 12})
	require.NoError(t, err)
	assert.Equal(t, "INSIGHTS:\n- Quiet day", narrative)
}
