package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"ProfcomService/pkg/server"

	"go.uber.org/zap"
)

// ErrCircuitOpen возвращается, когда circuit breaker не пропускает запрос
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState представляет состояние circuit breaker
type CircuitState int

const (
	// CircuitClosed означает, что circuit breaker закрыт (нормальное состояние)
	CircuitClosed CircuitState = iota
	// CircuitOpen означает, что circuit breaker открыт (состояние ошибки)
	CircuitOpen
	// CircuitHalfOpen означает, что circuit breaker полуоткрыт (пробное состояние)
	CircuitHalfOpen
)

// String возвращает строковое представление состояния
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitOpen:
		return "OPEN"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// metricValue кодирует состояние для метрики circuit_breaker_state (0: closed, 1: half-open, 2: open)
func (s CircuitState) metricValue() int {
	switch s {
	case CircuitHalfOpen:
		return 1
	case CircuitOpen:
		return 2
	default:
		return 0
	}
}

// CircuitBreaker защищает вызовы внешней зависимости (Redis, проверки здоровья)
type CircuitBreaker struct {
	name             string
	state            CircuitState
	failureCount     int
	failureThreshold int
	resetTimeout     time.Duration
	lastStateChange  time.Time
	halfOpenInFlight bool
	mutex            sync.Mutex
	logger           *zap.Logger
	ignoredErrors    []error
}

// NewCircuitBreaker создает новый экземпляр CircuitBreaker
func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger, ignoredErrors ...error) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold, _ = DefaultCircuitBreakerOptions()
	}

	cb := &CircuitBreaker{
		name:             name,
		state:            CircuitClosed,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		lastStateChange:  time.Now(),
		logger:           logger.With(zap.String("circuit", name)),
		ignoredErrors:    ignoredErrors,
	}
	server.RecordCircuitBreakerStateChange(name, CircuitClosed.metricValue())

	return cb
}

// DefaultCircuitBreakerOptions возвращает рекомендуемые настройки Circuit Breaker
func DefaultCircuitBreakerOptions() (int, time.Duration) {
	return 5, 30 * time.Second // 5 ошибок для срабатывания, сброс через 30 секунд
}

// Execute выполняет функцию с учетом состояния circuit breaker
func (cb *CircuitBreaker) Execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if !cb.allowRequest(operation) {
		cb.logger.Warn("Circuit breaker preventing operation execution",
			zap.String("operation", operation),
			zap.String("state", cb.GetState().String()))
		return ErrCircuitOpen
	}

	err := fn(ctx)

	cb.handleResult(operation, err)

	return err
}

// allowRequest проверяет, можно ли выполнить запрос в текущем состоянии
func (cb *CircuitBreaker) allowRequest(operation string) bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastStateChange) < cb.resetTimeout {
			return false
		}
		cb.transitionTo(CircuitHalfOpen, operation)
		cb.halfOpenInFlight = true
		return true
	case CircuitHalfOpen:
		// В полуоткрытом состоянии пропускаем только один пробный запрос
		if cb.halfOpenInFlight {
			return false
		}
		cb.halfOpenInFlight = true
		return true
	default:
		return false
	}
}

// handleResult обрабатывает результат выполнения функции
func (cb *CircuitBreaker) handleResult(operation string, err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.state == CircuitHalfOpen {
		cb.halfOpenInFlight = false
	}

	if err != nil && cb.isIgnoredError(err) {
		cb.logger.Debug("Игнорируем ошибку для circuit breaker",
			zap.String("operation", operation),
			zap.Error(err))
		err = nil
	}

	if err != nil {
		switch cb.state {
		case CircuitClosed:
			cb.failureCount++
			if cb.failureCount >= cb.failureThreshold {
				cb.transitionTo(CircuitOpen, operation)
			}
		case CircuitHalfOpen:
			cb.transitionTo(CircuitOpen, operation)
		}
		return
	}

	switch cb.state {
	case CircuitClosed:
		cb.failureCount = 0
	case CircuitHalfOpen:
		cb.transitionTo(CircuitClosed, operation)
	}
}

// isIgnoredError проверяет, является ли ошибка игнорируемой
func (cb *CircuitBreaker) isIgnoredError(err error) bool {
	for _, ignoredErr := range cb.ignoredErrors {
		if errors.Is(err, ignoredErr) {
			return true
		}
	}
	return false
}

// transitionTo меняет состояние, вызывается под мьютексом
func (cb *CircuitBreaker) transitionTo(state CircuitState, operation string) {
	cb.state = state
	cb.lastStateChange = time.Now()
	server.RecordCircuitBreakerStateChange(cb.name, state.metricValue())

	switch state {
	case CircuitOpen:
		cb.logger.Warn("Circuit breaker opened",
			zap.String("operation", operation),
			zap.Int("failures", cb.failureCount),
			zap.Duration("reset_timeout", cb.resetTimeout))
	case CircuitHalfOpen:
		cb.logger.Info("Circuit breaker half-opened",
			zap.String("operation", operation))
	case CircuitClosed:
		cb.failureCount = 0
		cb.logger.Info("Circuit breaker closed",
			zap.String("operation", operation))
	}
}

// GetState возвращает текущее состояние circuit breaker
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}
