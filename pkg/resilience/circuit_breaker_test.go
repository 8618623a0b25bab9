package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestCircuitBreaker_States(t *testing.T) {
	logger := zap.NewNop()

	// Низкий порог и короткий таймаут для быстрого теста
	failureThreshold := 3
	resetTimeout := 100 * time.Millisecond
	cb := NewCircuitBreaker("test_states", failureThreshold, resetTimeout, logger)

	if state := cb.GetState(); state != CircuitClosed {
		t.Errorf("Expected initial state to be CLOSED, got %v", state)
	}

	testErr := errors.New("test error")
	ctx := context.Background()

	// Шаг 1: circuit breaker открывается после нескольких ошибок
	for i := 0; i < failureThreshold; i++ {
		err := cb.Execute(ctx, "test_operation", func(ctx context.Context) error {
			return testErr
		})
		if !errors.Is(err, testErr) {
			t.Errorf("Expected test error, got: %v", err)
		}
	}

	if state := cb.GetState(); state != CircuitOpen {
		t.Errorf("Expected circuit to be OPEN after %d failures, got %v", failureThreshold, state)
	}

	// Шаг 2: при открытом circuit breaker функция не выполняется
	operationCalled := false
	err := cb.Execute(ctx, "test_operation", func(ctx context.Context) error {
		operationCalled = true
		return nil
	})

	if operationCalled {
		t.Error("Operation was called when circuit is open")
	}
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got: %v", err)
	}

	// Шаг 3: после таймаута пробный запрос проходит и закрывает circuit breaker
	time.Sleep(resetTimeout + 20*time.Millisecond)

	successOp := false
	err = cb.Execute(ctx, "test_operation", func(ctx context.Context) error {
		successOp = true
		return nil
	})

	if !successOp {
		t.Error("Operation was not called in half-open state")
	}
	if err != nil {
		t.Errorf("Expected no error for successful trial call, got: %v", err)
	}
	if state := cb.GetState(); state != CircuitClosed {
		t.Errorf("Expected circuit to be CLOSED after successful trial call, got %v", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	resetTimeout := 50 * time.Millisecond
	cb := NewCircuitBreaker("test_reopen", 1, resetTimeout, zap.NewNop())
	ctx := context.Background()
	testErr := errors.New("boom")

	_ = cb.Execute(ctx, "op", func(ctx context.Context) error { return testErr })
	if state := cb.GetState(); state != CircuitOpen {
		t.Fatalf("Expected OPEN, got %v", state)
	}

	time.Sleep(resetTimeout + 20*time.Millisecond)

	err := cb.Execute(ctx, "op", func(ctx context.Context) error { return testErr })
	if !errors.Is(err, testErr) {
		t.Errorf("Expected trial call error, got %v", err)
	}
	if state := cb.GetState(); state != CircuitOpen {
		t.Errorf("Expected OPEN after failed trial call, got %v", state)
	}
}

func TestCircuitBreaker_IgnoredErrors(t *testing.T) {
	cb := NewCircuitBreaker("test_ignored", 2, time.Minute, zap.NewNop(), redis.Nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := cb.Execute(ctx, "get", func(ctx context.Context) error { return redis.Nil })
		if !errors.Is(err, redis.Nil) {
			t.Errorf("Expected redis.Nil to be returned to caller, got %v", err)
		}
	}

	if state := cb.GetState(); state != CircuitClosed {
		t.Errorf("Ignored errors must not open the circuit, got %v", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker("test_reset", 2, time.Minute, zap.NewNop())
	ctx := context.Background()
	testErr := errors.New("fail")

	_ = cb.Execute(ctx, "op", func(ctx context.Context) error { return testErr })
	_ = cb.Execute(ctx, "op", func(ctx context.Context) error { return nil })
	_ = cb.Execute(ctx, "op", func(ctx context.Context) error { return testErr })

	if state := cb.GetState(); state != CircuitClosed {
		t.Errorf("Non-consecutive failures must not open the circuit, got %v", state)
	}
}

func TestCircuitState_String(t *testing.T) {
	cases := map[CircuitState]string{
		CircuitClosed:    "CLOSED",
		CircuitOpen:      "OPEN",
		CircuitHalfOpen:  "HALF_OPEN",
		CircuitState(42): "UNKNOWN",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("CircuitState(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestDefaultCircuitBreakerOptions(t *testing.T) {
	threshold, timeout := DefaultCircuitBreakerOptions()
	if threshold != 5 || timeout != 30*time.Second {
		t.Errorf("Unexpected defaults: %d, %v", threshold, timeout)
	}
}
