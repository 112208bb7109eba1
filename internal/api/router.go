package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mailintel/pkg/metrics"
	"mailintel/pkg/trace"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	digestHandler *DigestHandler,
	analysisHandler *AnalysisQueryHandler,
	prefsHandler *PreferencesHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()
	r.Use(traceMiddleware(), metricsMiddleware())

	// Public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/digest", digestHandler.GetDigest)
		auth.GET("/analyses", analysisHandler.ListAnalyses)
		auth.GET("/preferences", prefsHandler.GetPreferences)
		auth.PUT("/preferences", prefsHandler.PutPreferences)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

// traceMiddleware adopts the caller's trace ID or mints one, stores it on
// the request context for downstream calls (assist client, MQ publish) and
// echoes it back on the response.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := trace.Ensure(c.GetHeader(trace.HeaderName()))
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.HeaderName(), traceID)
		c.Next()
	}
}

// metricsMiddleware 记录每个请求的耗时
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
