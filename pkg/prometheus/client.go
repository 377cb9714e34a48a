package prometheus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

// Client Prometheus 客户端，持有独立的 Registry
type Client struct {
	config   *Config
	registry *prometheus.Registry
	closed   atomic.Bool
}

// New 创建 Prometheus 客户端
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}
	if cfg.EnableGoCollector {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	return c, nil
}

// Registry 获取底层 Registry
func (c *Client) Registry() *prometheus.Registry {
	return c.registry
}

// Registerer 供业务指标注册使用
func (c *Client) Registerer() prometheus.Registerer {
	return c.registry
}

// Namespace 返回指标命名空间
func (c *Client) Namespace() string {
	return c.config.Namespace
}

// Handler 返回 HTTP Handler（用于集成到现有 HTTP 服务器）
func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// WriteText 以 Prometheus 文本格式输出当前所有指标
func (c *Client) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Push 将当前指标推送到 Pushgateway
func (c *Client) Push(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.push(ctx)
}

func (c *Client) push(ctx context.Context) error {
	if c.config.Push.URL == "" {
		return ErrPushDisabled
	}

	if c.config.Push.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Push.Timeout)
		defer cancel()
	}

	pusher := push.New(c.config.Push.URL, c.config.Push.Job).Gatherer(c.registry)
	if err := pusher.AddContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

// Close 关闭客户端，配置了 Pushgateway 时做最后一次推送
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if c.config.Push.URL == "" {
		return nil
	}

	return c.push(context.Background())
}
