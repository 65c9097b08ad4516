package goroutine

import (
	"context"

	"github.com/sourcegraph/conc/panics"

	"github.com/ignatzorin/plumbing-backend/internal/logger"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// Try выполняет fn в текущей горутине и превращает panic в ошибку.
func (rh *RecoveryHandler) Try(fn func()) error {
	var pc panics.Catcher
	pc.Try(fn)
	if r := pc.Recovered(); r != nil {
		rh.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r.Value, r.Stack)
		return r.AsError()
	}
	return nil
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		_ = rh.Try(func() { fn(ctx) })
	}()
}

// SafeGoWithContext запускает безопасную горутину с контекстом и логгером приложения
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	NewRecoveryHandler(logger.Entry()).SafeGoWithContext(ctx, fn)
}
