package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"ProfcomService/pkg/server"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// DatabaseHealthChecker сообщает о доступности хранилища
type DatabaseHealthChecker interface {
	IsDatabaseHealthy(ctx context.Context) bool
}

// Server представляет собой gRPC сервер со стандартным сервисом проверки здоровья
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	logger       *zap.Logger
	port         int
}

// NewServer создает новый экземпляр gRPC сервера
func NewServer(logger *zap.Logger, port int) *Server {
	s := &Server{
		logger:       logger,
		port:         port,
		healthServer: health.NewServer(),
	}

	s.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.recoveryInterceptor(),
			server.TracingUnaryInterceptor(logger),
			server.MetricsUnaryInterceptor(),
		),
	)

	healthpb.RegisterHealthServer(s.grpcServer, s.healthServer)

	// Включаем reflection для удобства отладки через grpcurl
	reflection.Register(s.grpcServer)

	return s
}

// Run слушает настроенный порт и обслуживает запросы до остановки
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.logger.Error("Failed to listen", zap.Error(err), zap.Int("port", s.port))
		return err
	}

	return s.Serve(lis)
}

// Serve обслуживает запросы на переданном listener
func (s *Server) Serve(lis net.Listener) error {
	s.SetServing(true)
	s.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// SetServing переключает статус сервиса проверки здоровья
func (s *Server) SetServing(serving bool) {
	servingStatus := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		servingStatus = healthpb.HealthCheckResponse_SERVING
	}
	s.healthServer.SetServingStatus("", servingStatus)
}

// WatchHealth периодически сверяет статус с доступностью хранилища до отмены контекста
func (s *Server) WatchHealth(ctx context.Context, checker DatabaseHealthChecker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healthy := checker.IsDatabaseHealthy(ctx)
			if !healthy {
				s.logger.Warn("Database is unavailable, reporting NOT_SERVING")
			}
			s.SetServing(healthy)
		}
	}
}

// Stop переводит сервис в NOT_SERVING и останавливает gRPC сервер
func (s *Server) Stop() {
	s.logger.Info("Stopping gRPC server")
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}

// recoveryInterceptor создает перехватчик для восстановления после паники
func (s *Server) recoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Recovered from panic",
					zap.Any("panic", r),
					zap.String("method", info.FullMethod))
				err = status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}
