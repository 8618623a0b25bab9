package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDHeader заголовок HTTP и ключ метаданных gRPC с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

type contextKey string

const (
	// RequestIDKey ключ для request ID в контексте
	RequestIDKey contextKey = "request_id"

	// StartTimeKey ключ для времени начала запроса в контексте
	StartTimeKey contextKey = "start_time"
)

// beginRequest кладет в контекст идентификатор запроса (новый, если входящий пуст) и время начала
func beginRequest(ctx context.Context, incomingID string) (context.Context, string, time.Time) {
	requestID := incomingID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	startTime := time.Now()

	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	ctx = context.WithValue(ctx, StartTimeKey, startTime)
	return ctx, requestID, startTime
}

// TracingUnaryInterceptor создает перехватчик, который присваивает вызову request ID и логирует результат
func TracingUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, requestID, startTime := beginRequest(ctx, requestIDFromMetadata(ctx))
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", requestID),
		}

		logger.Info("Start processing request", fields...)

		resp, err := handler(ctx, req)

		fields = append(fields, zap.Duration("duration", time.Since(startTime)))
		if err != nil {
			logger.Error("Request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("Request completed", fields...)
		}

		return resp, err
	}
}

// RequestLogger возвращает LoggingMiddleware в форме, принимаемой chi.Router.Use
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return LoggingMiddleware(logger, next)
	}
}

// LoggingMiddleware присваивает HTTP запросу request ID, возвращает его в заголовке ответа и логирует статус
func LoggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, requestID, startTime := beginRequest(r.Context(), r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, requestID)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
		}
		logger.Debug("Start processing HTTP request", fields...)

		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("HTTP request completed", append(fields,
			zap.Int("status", ww.statusCode),
			zap.Duration("duration", time.Since(startTime)))...)
	})
}

// responseWriterWrapper запоминает код ответа для логов и метрик
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// requestIDFromMetadata читает request ID из входящих метаданных gRPC (ключи там в нижнем регистре)
func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(RequestIDHeader); len(values) > 0 {
		return values[0]
	}
	return ""
}

// GetRequestID извлекает request ID из контекста
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID добавляет request ID в логгер
func WithRequestID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if requestID := GetRequestID(ctx); requestID != "" {
		return logger.With(zap.String("request_id", requestID))
	}
	return logger
}
