package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailintel/pkg/trace"
)

func newTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	return NewRouter(nil, nil, nil, "test-secret")
}

func TestHealthz(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTraceIDMintedWhenAbsent(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Engine.ServeHTTP(w, req)

	assert.Len(t, w.Header().Get(trace.HeaderName()), 32)
}

func TestTraceIDEchoedWhenProvided(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(trace.HeaderName(), "trace-from-caller")
	r.Engine.ServeHTTP(w, req)

	assert.Equal(t, "trace-from-caller", w.Header().Get(trace.HeaderName()))
}

func TestTraceIDReachesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(traceMiddleware())

	var got string
	r.GET("/echo", func(c *gin.Context) {
		got = trace.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(trace.HeaderName(), "trace-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", got)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/digest", nil)
	r.Engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
