package logger

import "context"

// Logger 日志接口，业务代码只依赖该接口
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	DebugContext(ctx context.Context, msg string, keysAndValues ...any)
	InfoContext(ctx context.Context, msg string, keysAndValues ...any)
	WarnContext(ctx context.Context, msg string, keysAndValues ...any)
	ErrorContext(ctx context.Context, msg string, keysAndValues ...any)

	// Named 派生具名子日志，如 "service.ledger"
	Named(name string) Logger
	// WithFields 派生携带固定字段的子日志
	WithFields(keysAndValues ...any) Logger

	Sync() error
}
