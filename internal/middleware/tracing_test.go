package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"recipebox/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("test")
	t.Cleanup(func() {
		observability.Tracer = prev
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func spanAttribute(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingRecordsServerSpan(t *testing.T) {
	recorder := withRecordingTracer(t)

	app := fiber.New()
	app.Use(Tracing())
	app.Get("/recipes", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	traceID := resp.Header.Get("X-Trace-ID")
	require.NotEmpty(t, traceID)
	assert.NotEqual(t, "00000000000000000000000000000000", traceID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /recipes", span.Name())
	assert.Equal(t, traceID, span.SpanContext().TraceID().String())

	method, ok := spanAttribute(span.Attributes(), "http.method")
	require.True(t, ok)
	assert.Equal(t, "GET", method.AsString())

	status, ok := spanAttribute(span.Attributes(), "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(fiber.StatusOK), status.AsInt64())
}

func TestTracingRecordsHandlerError(t *testing.T) {
	recorder := withRecordingTracer(t)

	app := fiber.New()
	app.Use(Tracing())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].Events(), "handler error should be recorded on the span")
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName: "recipebox-api",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
