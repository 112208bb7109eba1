package mq

import (
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"mailintel/pkg/trace"
)

func TestTraceIDFromHeaders(t *testing.T) {
	assert.Equal(t, "", traceIDFromHeaders(nil))
	assert.Equal(t, "", traceIDFromHeaders(amqp091.Table{}))
	assert.Equal(t, "", traceIDFromHeaders(amqp091.Table{trace.HeaderName(): 42}))
	assert.Equal(t, "abc",
		traceIDFromHeaders(amqp091.Table{trace.HeaderName(): "abc"}))
}
