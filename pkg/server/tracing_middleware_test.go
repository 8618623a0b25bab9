package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestTracingUnaryInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := TracingUnaryInterceptor(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	t.Run("GeneratesRequestID", func(t *testing.T) {
		var seen string
		_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			seen = GetRequestID(ctx)
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if seen == "" {
			t.Error("Expected generated request ID in handler context")
		}
	})

	t.Run("RequestIDFromMetadata", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "req-123"))

		var seen string
		_, _ = interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			seen = GetRequestID(ctx)
			return nil, nil
		})
		if seen != "req-123" {
			t.Errorf("Expected request ID from metadata, got %q", seen)
		}
	})

	t.Run("LogsFailure", func(t *testing.T) {
		handlerErr := errors.New("boom")
		_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, handlerErr
		})
		if !errors.Is(err, handlerErr) {
			t.Fatalf("Expected handler error, got %v", err)
		}
		if logs.FilterMessage("Request failed").Len() != 1 {
			t.Error("Expected failure to be logged")
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	t.Run("GeneratesRequestID", func(t *testing.T) {
		var seen string
		handler := LoggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
			w.WriteHeader(http.StatusCreated)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", nil))

		if seen == "" {
			t.Error("Expected request ID in handler context")
		}
		if w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("Expected response header %q, got %q", seen, w.Header().Get(RequestIDHeader))
		}

		entries := logs.FilterMessage("HTTP request completed").All()
		if len(entries) != 1 {
			t.Fatalf("Expected one completion log, got %d", len(entries))
		}
		if status := entries[0].ContextMap()["status"]; status != int64(http.StatusCreated) {
			t.Errorf("Expected logged status 201, got %v", status)
		}
	})

	t.Run("KeepsIncomingRequestID", func(t *testing.T) {
		var seen string
		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/guides", nil)
		req.Header.Set(RequestIDHeader, "existing-request-id")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen != "existing-request-id" {
			t.Errorf("Expected incoming request ID, got %q", seen)
		}
	})
}

func TestGetRequestID(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "test-id-456")
	if id := GetRequestID(ctx); id != "test-id-456" {
		t.Errorf("Expected test-id-456, got %q", id)
	}
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	if logger := WithRequestID(context.Background(), base); logger != base {
		t.Error("Expected logger to remain unchanged without request ID")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "test-id-789")
	WithRequestID(ctx, base).Info("hello")

	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["request_id"] != "test-id-789" {
		t.Errorf("Expected request_id field in log entry, got %+v", entries)
	}
}
