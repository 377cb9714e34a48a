package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// 操作结果，用于指标标签
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// resultOf 调用方错误记为 rejected，其余错误记为 failed
func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case model.IsValidation(err),
		errors.Is(err, model.ErrInsufficientBalance),
		errors.Is(err, model.ErrCharacterNotFound):
		return resultRejected
	default:
		return resultFailed
	}
}

// actorFromContext 上下文中的操作者，缺省表示系统发起
func actorFromContext(ctx context.Context) model.Optional[int64] {
	if id, ok := logger.ActorFromContext(ctx); ok {
		return model.Some(id)
	}
	return model.None[int64]()
}
