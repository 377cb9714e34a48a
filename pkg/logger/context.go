package logger

import (
	"context"

	"go.uber.org/zap"
)

// ContextFieldExtractor 从 context 提取日志字段
type ContextFieldExtractor func(ctx context.Context) []zap.Field

type actorKey struct{}

// WithActor 在 context 中记录操作者，日志会自动带上 actor_id
func WithActor(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext 读取 context 中的操作者
func ActorFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}

// DefaultContextExtractor 默认提取器：只提取 actor_id
func DefaultContextExtractor(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	if id, ok := ActorFromContext(ctx); ok {
		return []zap.Field{zap.Int64("actor_id", id)}
	}
	return nil
}
