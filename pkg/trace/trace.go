package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// context 键用非导出类型，避免与其他包的字符串键冲突
type ctxKey struct{}

const headerName = "X-Trace-ID"

// HeaderName returns the header that carries the trace ID across HTTP
// calls and MQ messages.
func HeaderName() string { return headerName }

// GenerateTraceID 生成一个新的 trace ID
func GenerateTraceID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Ensure returns the incoming trace ID when present, a fresh one otherwise.
// Entry points (HTTP middleware, MQ consumer) run every request through it
// so downstream calls always have an ID to propagate.
func Ensure(id string) string {
	if id != "" {
		return id
	}
	return GenerateTraceID()
}

// WithContext 将 trace_id 添加到 context 中
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// FromContext 从 context 中获取 trace_id，没有则返回空串
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
