package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ProfcomService/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// metricsNamespace префикс всех метрик сервиса
const metricsNamespace = "profcom"

// Значения метки outcome
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	// httpRequestDuration измеряет длительность HTTP запросов к API по шаблону маршрута
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	// grpcRequestDuration измеряет длительность вызовов gRPC health
	grpcRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Duration of gRPC requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)

	grpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of gRPC requests",
		},
		[]string{"method", "code"},
	)

	// storageOperationDuration измеряет длительность операций репозиториев
	storageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "storage_operation_duration_seconds",
			Help:      "Duration of repository operations in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "outcome"},
	)

	storageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "storage_operations_total",
			Help:      "Total number of repository operations",
		},
		[]string{"operation", "outcome"},
	)

	// cacheOperationDuration измеряет длительность команд Redis
	cacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_operation_duration_seconds",
			Help:      "Duration of cache operations in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"operation", "outcome"},
	)

	cacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "outcome"},
	)

	// cacheLookupsTotal считает попадания и промахи кэша профилей и гайдов
	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cached entity and result (hit or miss)",
		},
		[]string{"entity", "result"},
	)

	// accessDeniedTotal считает отказы слоя авторизации
	accessDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "access_denied_total",
			Help:      "Operations rejected by authorization (unauthorized or forbidden)",
		},
		[]string{"operation", "reason"},
	)

	// circuitBreakerState отслеживает состояние circuit breaker
	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_state",
			Help:      "State of circuit breaker (0: closed, 1: half-open, 2: open)",
		},
		[]string{"name"},
	)
)

// MetricsServer запускает HTTP сервер для Prometheus
func MetricsServer(port int, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// Недоступные метрики не останавливают основной сервис
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return server
}

// MetricsMiddleware собирает метрики HTTP запросов; маршрут берется из шаблона chi
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		ww := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		code := strconv.Itoa(ww.statusCode)
		httpRequestDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(startTime).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, route, code).Inc()
	})
}

// MetricsUnaryInterceptor создает gRPC перехватчик для сбора метрик
func MetricsUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		resp, err := handler(ctx, req)

		// status.Code возвращает OK для nil
		code := status.Code(err).String()
		grpcRequestDuration.WithLabelValues(info.FullMethod, code).Observe(time.Since(startTime).Seconds())
		grpcRequestsTotal.WithLabelValues(info.FullMethod, code).Inc()

		return resp, err
	}
}

// outcome классифицирует результат операции; отсутствие записи и промах кэша ошибкой не считаются
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case apperrors.IsNotFound(err):
		return outcomeNotFound
	default:
		return outcomeError
	}
}

// RecordDBOperation записывает метрики операции репозитория
func RecordDBOperation(operation string, duration time.Duration, err error) {
	result := outcome(err)
	storageOperationDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
	storageOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheOperation записывает метрики команды Redis
func RecordCacheOperation(operation string, duration time.Duration, err error) {
	result := outcome(err)
	cacheOperationDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
	cacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheLookup записывает попадание или промах кэша для сущности (user, guides)
func RecordCacheLookup(entity string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(entity, result).Inc()
}

// RecordAccessDenied записывает отказ авторизации; прочие ошибки игнорируются
func RecordAccessDenied(operation string, err error) {
	switch {
	case apperrors.IsUnauthorized(err):
		accessDeniedTotal.WithLabelValues(operation, "unauthorized").Inc()
	case apperrors.IsForbidden(err):
		accessDeniedTotal.WithLabelValues(operation, "forbidden").Inc()
	}
}

// RecordCircuitBreakerStateChange записывает изменение состояния circuit breaker
func RecordCircuitBreakerStateChange(name string, state int) {
	circuitBreakerState.WithLabelValues(name).Set(float64(state))
}
