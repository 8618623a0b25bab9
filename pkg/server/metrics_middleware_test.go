package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ProfcomService/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// resetMetrics сбрасывает все метрики для тестов
func resetMetrics() {
	httpRequestDuration.Reset()
	httpRequestsTotal.Reset()
	grpcRequestDuration.Reset()
	grpcRequestsTotal.Reset()
	storageOperationDuration.Reset()
	storageOperationsTotal.Reset()
	cacheOperationDuration.Reset()
	cacheOperationsTotal.Reset()
	cacheLookupsTotal.Reset()
	accessDeniedTotal.Reset()
	circuitBreakerState.Reset()
}

func TestMetricsUnaryInterceptor(t *testing.T) {
	resetMetrics()

	interceptor := MetricsUnaryInterceptor()
	ctx := context.Background()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	t.Run("SuccessfulMethod", func(t *testing.T) {
		resp, err := interceptor(ctx, "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return "ok", nil
		})
		if err != nil || resp != "ok" {
			t.Fatalf("Unexpected result: %v, %v", resp, err)
		}

		if got := testutil.ToFloat64(grpcRequestsTotal.WithLabelValues(info.FullMethod, codes.OK.String())); got != 1 {
			t.Errorf("Expected 1 successful request, got %v", got)
		}
	})

	t.Run("FailedMethod", func(t *testing.T) {
		_, err := interceptor(ctx, "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.Unavailable, "down")
		})
		if status.Code(err) != codes.Unavailable {
			t.Fatalf("Expected Unavailable, got %v", err)
		}

		if got := testutil.ToFloat64(grpcRequestsTotal.WithLabelValues(info.FullMethod, codes.Unavailable.String())); got != 1 {
			t.Errorf("Expected 1 failed request, got %v", got)
		}
	})
}

func TestMetricsMiddleware(t *testing.T) {
	resetMetrics()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/profile/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/profile/1", "/profile/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	}

	// Оба запроса попадают в один шаблон маршрута
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/profile/{user_id}", "404")); got != 2 {
		t.Errorf("Expected 2 requests for route pattern, got %v", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) != 1 {
		t.Error("Expected one duration series")
	}
}

func TestRecordDBOperation(t *testing.T) {
	resetMetrics()

	RecordDBOperation("get_user", 0, nil)
	RecordDBOperation("get_user", 0, fmt.Errorf("get user 7: %w", apperrors.ErrNotFound))
	RecordDBOperation("get_user", 0, errors.New("db error"))
	RecordDBOperation("get_user", 0, nil)

	cases := map[string]float64{outcomeOK: 2, outcomeNotFound: 1, outcomeError: 1}
	for result, want := range cases {
		if got := testutil.ToFloat64(storageOperationsTotal.WithLabelValues("get_user", result)); got != want {
			t.Errorf("Expected %v operations with outcome %s, got %v", want, result, got)
		}
	}
}

func TestRecordCacheOperation(t *testing.T) {
	resetMetrics()

	RecordCacheOperation("get_user_cache", 0, redis.Nil)
	RecordCacheOperation("set_user_cache", 0, errors.New("redis down"))

	if got := testutil.ToFloat64(cacheOperationsTotal.WithLabelValues("get_user_cache", outcomeNotFound)); got != 1 {
		t.Errorf("Expected cache miss to be recorded as not_found, got %v", got)
	}
	if got := testutil.ToFloat64(cacheOperationsTotal.WithLabelValues("set_user_cache", outcomeError)); got != 1 {
		t.Errorf("Expected 1 failed cache operation, got %v", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	resetMetrics()

	RecordCacheLookup("user", true)
	RecordCacheLookup("user", false)
	RecordCacheLookup("user", false)

	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("user", "hit")); got != 1 {
		t.Errorf("Expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("user", "miss")); got != 2 {
		t.Errorf("Expected 2 misses, got %v", got)
	}
}

func TestRecordAccessDenied(t *testing.T) {
	resetMetrics()

	RecordAccessDenied("delete_profile", fmt.Errorf("resolve caller: %w", apperrors.ErrUnauthorized))
	RecordAccessDenied("delete_profile", apperrors.ErrForbidden)
	RecordAccessDenied("delete_profile", errors.New("db error"))

	if got := testutil.ToFloat64(accessDeniedTotal.WithLabelValues("delete_profile", "unauthorized")); got != 1 {
		t.Errorf("Expected 1 unauthorized, got %v", got)
	}
	if got := testutil.ToFloat64(accessDeniedTotal.WithLabelValues("delete_profile", "forbidden")); got != 1 {
		t.Errorf("Expected 1 forbidden, got %v", got)
	}
	if testutil.CollectAndCount(accessDeniedTotal) != 2 {
		t.Error("Other errors must not be recorded")
	}
}

func TestRecordCircuitBreakerStateChange(t *testing.T) {
	resetMetrics()

	RecordCircuitBreakerStateChange("redis", 2)
	if got := testutil.ToFloat64(circuitBreakerState.WithLabelValues("redis")); got != 2 {
		t.Errorf("Expected state 2, got %v", got)
	}

	RecordCircuitBreakerStateChange("redis", 0)
	if got := testutil.ToFloat64(circuitBreakerState.WithLabelValues("redis")); got != 0 {
		t.Errorf("Expected state 0, got %v", got)
	}
}
