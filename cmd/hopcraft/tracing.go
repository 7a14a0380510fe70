package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/infrastructures/tracing"
)

const tracerShutdownTimeout = 5 * time.Second

// startTracing installs the tracer provider and returns the flush to defer.
func startTracing() (func(), error) {
	tp, err := tracing.InitTracer("hopcraft", cfg.Jaeger)
	if err != nil {
		return nil, err
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}, nil
}
