package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*BaseLogger)(nil)

// WriteSyncer 日志输出目标
type WriteSyncer = zapcore.WriteSyncer

// BaseLogger 基于 zap 的 Logger 实现
type BaseLogger struct {
	zl               *zap.Logger
	config           *Config
	name             string
	hooks            []Hook
	extraWriters     []WriteSyncer
	contextExtractor ContextFieldExtractor
}

// New 创建 BaseLogger，cfg 为 nil 时使用默认配置
func New(cfg *Config, opts ...Option) (*BaseLogger, error) {
	l := &BaseLogger{
		config:           withDefaults(cfg),
		contextExtractor: DefaultContextExtractor,
	}

	for _, opt := range opts {
		opt(l)
	}

	if len(l.extraWriters) == 0 {
		if err := l.config.Validate(); err != nil {
			return nil, err
		}
	}

	zl, err := l.build()
	if err != nil {
		return nil, err
	}
	l.zl = zl

	return l, nil
}

// withDefaults 用默认值补齐未填写的字段（布尔开关按用户配置原样保留）
func withDefaults(cfg *Config) *Config {
	def := DefaultConfig()
	if cfg == nil {
		return def
	}

	c := *cfg
	if c.Level == "" {
		c.Level = def.Level
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.TimeFormat == "" {
		c.TimeFormat = def.TimeFormat
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = def.StacktraceLevel
	}
	if c.Rotation.Type == "" {
		c.Rotation = def.Rotation
	}
	if c.GlobalFields == nil {
		c.GlobalFields = make(map[string]any)
	}
	return &c
}

// build 构建 zap logger
func (l *BaseLogger) build() (*zap.Logger, error) {
	var encoder zapcore.Encoder
	switch l.config.Format {
	case ConsoleFormat:
		encoder = zapcore.NewConsoleEncoder(l.encoderConfig())
	default:
		encoder = zapcore.NewJSONEncoder(l.encoderConfig())
	}

	writers := make([]zapcore.WriteSyncer, 0, 2+len(l.extraWriters))
	if l.config.EnableConsole {
		if l.config.ConsoleStderr {
			writers = append(writers, zapcore.AddSync(os.Stderr))
		} else {
			writers = append(writers, zapcore.AddSync(os.Stdout))
		}
	}
	if l.config.EnableFile {
		fw, err := NewRotationWriter(&l.config.Rotation, l.config.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create rotation writer: %w", err)
		}
		writers = append(writers, zapcore.AddSync(fw))
	}
	writers = append(writers, l.extraWriters...)

	var core zapcore.Core = zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), parseLevel(l.config.Level))
	if len(l.hooks) > 0 {
		core = NewHookedCore(core, l.hooks...)
	}

	options := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if l.config.EnableStacktrace {
		options = append(options, zap.AddStacktrace(parseLevel(l.config.StacktraceLevel)))
	}
	if l.config.Development {
		options = append(options, zap.Development())
	}

	zl := zap.New(core, options...)

	if len(l.config.GlobalFields) > 0 {
		fields := make([]zap.Field, 0, len(l.config.GlobalFields))
		for k, v := range l.config.GlobalFields {
			fields = append(fields, zap.Any(k, v))
		}
		zl = zl.With(fields...)
	}
	if l.name != "" {
		zl = zl.Named(l.name)
	}

	return zl, nil
}

func (l *BaseLogger) encoderConfig() zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(l.config.TimeFormat),
	}
	if l.config.Development {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}

func parseLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *BaseLogger) Debug(msg string, keysAndValues ...any) {
	l.zl.Debug(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Info(msg string, keysAndValues ...any) {
	l.zl.Info(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Warn(msg string, keysAndValues ...any) {
	l.zl.Warn(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Error(msg string, keysAndValues ...any) {
	l.zl.Error(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) DebugContext(ctx context.Context, msg string, keysAndValues ...any) {
	l.zl.Debug(msg, l.withContext(ctx, keysAndValues)...)
}

func (l *BaseLogger) InfoContext(ctx context.Context, msg string, keysAndValues ...any) {
	l.zl.Info(msg, l.withContext(ctx, keysAndValues)...)
}

func (l *BaseLogger) WarnContext(ctx context.Context, msg string, keysAndValues ...any) {
	l.zl.Warn(msg, l.withContext(ctx, keysAndValues)...)
}

func (l *BaseLogger) ErrorContext(ctx context.Context, msg string, keysAndValues ...any) {
	l.zl.Error(msg, l.withContext(ctx, keysAndValues)...)
}

func (l *BaseLogger) withContext(ctx context.Context, keysAndValues []any) []zap.Field {
	return append(l.contextExtractor(ctx), toZapFields(keysAndValues)...)
}

// Named 创建具名 logger
func (l *BaseLogger) Named(name string) Logger {
	cp := *l
	cp.zl = l.zl.Named(name)
	cp.name = name
	return &cp
}

// WithFields 创建携带字段的 logger
func (l *BaseLogger) WithFields(keysAndValues ...any) Logger {
	fields := toZapFields(keysAndValues)
	if len(fields) == 0 {
		return l
	}
	cp := *l
	cp.zl = l.zl.With(fields...)
	return &cp
}

// Sync 刷新缓冲
func (l *BaseLogger) Sync() error {
	return l.zl.Sync()
}

// toZapFields 将 key-value 对转换为 zap.Field，奇数个参数时最后一个值记为 "!BADKEY"
func toZapFields(keysAndValues []any) []zap.Field {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i++ {
		if f, ok := keysAndValues[i].(zap.Field); ok {
			fields = append(fields, f)
			continue
		}
		key, ok := keysAndValues[i].(string)
		if !ok || i+1 >= len(keysAndValues) {
			fields = append(fields, zap.Any("!BADKEY", keysAndValues[i]))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
		i++
	}
	return fields
}
