package dbmetrics

import "context"

type ctxKey struct{}

var executorKey ctxKey

// WithExecutor кладет executor (обычно транзакцию) в контекст
// Используется transaction manager'ами, чтобы репозитории выполняли
// запросы внутри активной транзакции
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// GetExecutor возвращает executor из контекста, если он там есть,
// иначе переданный по умолчанию
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}
