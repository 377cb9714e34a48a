package prometheus

import "errors"

var (
	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("prometheus: invalid config")

	// ErrClientClosed 客户端已关闭
	ErrClientClosed = errors.New("prometheus: client closed")

	// ErrPushDisabled 未配置 Pushgateway
	ErrPushDisabled = errors.New("prometheus: pushgateway not configured")
)
