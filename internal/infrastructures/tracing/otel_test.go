package tracing

import (
	"context"
	"testing"
)

func TestNormalizeJaegerCollector(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "jaeger:14268", want: "http://jaeger:14268/api/traces"},
		{in: "http://jaeger:14268/", want: "http://jaeger:14268/api/traces"},
		{in: " https://traces.example.com/api/traces ", want: "https://traces.example.com/api/traces"},
	}

	for _, tc := range tests {
		if got := normalizeJaegerCollector(tc.in); got != tc.want {
			t.Fatalf("normalizeJaegerCollector(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestInitTracer_WithoutCollector(t *testing.T) {
	tp, err := InitTracer("hopcraft-test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "span")
	span.End()
}
