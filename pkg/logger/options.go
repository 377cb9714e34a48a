package logger

// Option 日志选项
type Option func(*BaseLogger)

// WithName 设置 logger 名称
func WithName(name string) Option {
	return func(l *BaseLogger) {
		l.name = name
	}
}

// WithHooks 添加钩子
func WithHooks(hooks ...Hook) Option {
	return func(l *BaseLogger) {
		l.hooks = append(l.hooks, hooks...)
	}
}

// WithContextExtractor 替换 context 字段提取器
func WithContextExtractor(fn ContextFieldExtractor) Option {
	return func(l *BaseLogger) {
		if fn != nil {
			l.contextExtractor = fn
		}
	}
}

// WithWriteSyncer 额外输出到指定 writer（测试中用于捕获日志）
func WithWriteSyncer(ws WriteSyncer) Option {
	return func(l *BaseLogger) {
		l.extraWriters = append(l.extraWriters, ws)
	}
}
