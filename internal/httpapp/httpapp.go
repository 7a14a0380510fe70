package httpapp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

type HTTPApp struct {
	log      *zap.Logger
	server   *http.Server
	addr     string
	shutdown time.Duration
}

func New(log *zap.Logger, host string, port int, timeouts Timeouts, handler http.Handler) *HTTPApp {
	addr := fmt.Sprintf("%s:%d", host, port)

	return &HTTPApp{
		log: log,
		server: &http.Server{
			Addr:         addr,
			Handler:      Chain(log, handler),
			ReadTimeout:  timeouts.Read,
			WriteTimeout: timeouts.Write,
		},
		addr:     addr,
		shutdown: timeouts.Shutdown,
	}
}

// Chain wraps handler with tracing, panic recovery and access logging, outermost first.
func Chain(log *zap.Logger, handler http.Handler) http.Handler {
	return tracingMiddleware(recoveryMiddleware(log, loggingMiddleware(log, handler)))
}

// Run blocks until the server stops. A graceful Stop is not reported as an error.
func (a *HTTPApp) Run() error {
	const op = "httpapp.Run"

	l, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("http server started", zap.String("addr", l.Addr().String()))

	if err := a.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *HTTPApp) Stop() {
	a.log.Info("stopping http server", zap.String("addr", a.addr))

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdown)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http shutdown error", zap.Error(err))
	}
}

func tracingMiddleware(next http.Handler) http.Handler {
	tracer := otel.Tracer("hopcraft/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		}

		if rec.status >= http.StatusInternalServerError {
			log.Error("http request failed", fields...)
			return
		}

		log.Info("http request", fields...)
	})
}

func recoveryMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
