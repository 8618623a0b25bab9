package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Значения статуса зависимостей
const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDegraded = "degraded"
	StatusUnknown  = "unknown"
)

const (
	defaultHealthInterval = 10 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

// HealthCheckerInterface определяет интерфейс для проверки здоровья зависимостей
type HealthCheckerInterface interface {
	IsDatabaseHealthy(ctx context.Context) bool
	IsRedisHealthy(ctx context.Context) bool
}

// dependencyStatus результат последней проверки зависимостей
type dependencyStatus struct {
	Database  string
	Redis     string
	CheckedAt time.Time
}

// HealthCheck периодически проверяет хранилище и кэш и отдает результат по HTTP
type HealthCheck struct {
	checker  HealthCheckerInterface
	logger   *zap.Logger
	version  string
	server   *http.Server
	interval time.Duration

	mu     sync.RWMutex
	status dependencyStatus

	stop     chan struct{}
	stopOnce sync.Once
}

// HealthResponse представляет ответ эндпоинта /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	CheckedAt *time.Time        `json:"checked_at,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
}

// NewHealthCheck создает новый сервис проверки здоровья; до первой проверки состояние неизвестно
func NewHealthCheck(checker HealthCheckerInterface, logger *zap.Logger, version string) *HealthCheck {
	return &HealthCheck{
		checker:  checker,
		logger:   logger,
		version:  version,
		interval: defaultHealthInterval,
		status:   dependencyStatus{Database: StatusUnknown, Redis: StatusUnknown},
		stop:     make(chan struct{}),
	}
}

// Handler возвращает маршруты /health, /health/live и /health/ready
func (h *HealthCheck) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", h.livenessHandler)
	mux.HandleFunc("/health/ready", h.readinessHandler)
	mux.HandleFunc("/health", h.healthHandler)
	return mux
}

// StartServer запускает HTTP сервер проверки здоровья и фоновый мониторинг
func (h *HealthCheck) StartServer(port int) {
	h.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		h.logger.Info("Starting health check server", zap.Int("port", port))
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("Health check server failed", zap.Error(err))
		}
	}()

	h.checkServicesHealth()
	go h.monitorHealth()
}

// Stop останавливает фоновую проверку и HTTP сервер
func (h *HealthCheck) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() { close(h.stop) })
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func (h *HealthCheck) snapshot() dependencyStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// livenessHandler отвечает up, пока процесс жив
func (h *HealthCheck) livenessHandler(w http.ResponseWriter, r *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{"status": StatusUp})
}

// readinessHandler сообщает о готовности; без хранилища сервис не готов, Redis не обязателен
func (h *HealthCheck) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if h.snapshot().Database != StatusUp {
		writeHealthJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  StatusDown,
			"message": "database is not available",
		})
		return
	}

	writeHealthJSON(w, http.StatusOK, map[string]string{"status": StatusUp})
}

func (h *HealthCheck) healthHandler(w http.ResponseWriter, r *http.Request) {
	current := h.snapshot()

	response := HealthResponse{
		Status: StatusUp,
		Services: map[string]string{
			"service":  StatusUp,
			"database": current.Database,
			"redis":    current.Redis,
		},
		Timestamp: time.Now(),
		Version:   h.version,
	}
	if !current.CheckedAt.IsZero() {
		response.CheckedAt = &current.CheckedAt
	}

	code := http.StatusOK
	if current.Database != StatusUp {
		response.Status = StatusDown
		code = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, code, response)
}

func writeHealthJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// monitorHealth повторяет проверку с интервалом до вызова Stop
func (h *HealthCheck) monitorHealth() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.checkServicesHealth()
		}
	}
}

// checkServicesHealth обновляет статусы; недоступный Redis дает degraded, а не down
func (h *HealthCheck) checkServicesHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	next := dependencyStatus{Database: StatusUp, Redis: StatusUp, CheckedAt: time.Now()}
	if !h.checker.IsDatabaseHealthy(ctx) {
		next.Database = StatusDown
	}
	if !h.checker.IsRedisHealthy(ctx) {
		next.Redis = StatusDegraded
	}

	h.mu.Lock()
	prev := h.status
	h.status = next
	h.mu.Unlock()

	// Логируем только смену состояния
	if prev.Database != next.Database {
		h.logger.Warn("Database health changed", zap.String("from", prev.Database), zap.String("to", next.Database))
	}
	if prev.Redis != next.Redis {
		h.logger.Warn("Redis health changed", zap.String("from", prev.Redis), zap.String("to", next.Redis))
	}
}
