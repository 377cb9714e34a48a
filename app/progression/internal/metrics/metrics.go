package metrics

import (
	"fmt"
	"time"

	"github.com/lk2023060901/xdooria-progression/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
)

// Config 指标配置
type Config struct {
	// Namespace 指标命名空间
	Namespace string `mapstructure:"namespace" json:"namespace"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{Namespace: "progression"}
}

// ProgressionMetrics 成长服务指标
type ProgressionMetrics struct {
	config *Config

	// 业务操作
	OperationTotal    *prometheus.CounterVec   // 操作总数（按操作、结果）
	OperationDuration *prometheus.HistogramVec // 操作延迟

	// 积分
	PointsCredited *prometheus.CounterVec // 入账积分（按分类）
	PointsDebited  *prometheus.CounterVec // 扣减积分（按分类）
	LevelUps       prometheus.Counter     // 升级次数

	// 数据库
	DBQueryTotal    *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// 单写者锁等待
	LockWaitDuration *prometheus.HistogramVec
}

// New 创建成长服务指标
func New(cfg *Config) (*ProgressionMetrics, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to merge metrics config: %w", err)
	}
	ns := newCfg.Namespace

	return &ProgressionMetrics{
		config: newCfg,

		OperationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "operations_total",
				Help:      "业务操作总数",
			},
			[]string{"operation", "result"}, // result: success/rejected/failed
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "operation_duration_seconds",
				Help:      "业务操作延迟（秒）",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),

		PointsCredited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "points_credited_total",
				Help:      "入账积分总数",
			},
			[]string{"category"},
		),
		PointsDebited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "points_debited_total",
				Help:      "扣减积分总数（绝对值）",
			},
			[]string{"category"},
		),
		LevelUps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "level_ups_total",
				Help:      "升级次数",
			},
		),

		DBQueryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "db_queries_total",
				Help:      "数据库查询总数",
			},
			[]string{"operation", "result"}, // operation: select/insert/update
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "db_query_duration_seconds",
				Help:      "数据库查询延迟（秒）",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),

		LockWaitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "lock_wait_seconds",
				Help:      "获取角色写锁的等待时间（秒）",
				Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"scope"}, // scope: local/redis
		),
	}, nil
}

// Register 注册指标到 Prometheus Registry
func (m *ProgressionMetrics) Register(registerer prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.OperationTotal,
		m.OperationDuration,
		m.PointsCredited,
		m.PointsDebited,
		m.LevelUps,
		m.DBQueryTotal,
		m.DBQueryDuration,
		m.LockWaitDuration,
	}

	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordOperation 记录业务操作结果，result: success/rejected/failed
func (m *ProgressionMetrics) RecordOperation(operation, result string, start time.Time) {
	m.OperationTotal.WithLabelValues(operation, result).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordPoints 记录积分变动
func (m *ProgressionMetrics) RecordPoints(category string, amount int64) {
	switch {
	case amount > 0:
		m.PointsCredited.WithLabelValues(category).Add(float64(amount))
	case amount < 0:
		m.PointsDebited.WithLabelValues(category).Add(float64(-amount))
	}
}

// RecordLevelUps 记录升级次数
func (m *ProgressionMetrics) RecordLevelUps(n int32) {
	if n > 0 {
		m.LevelUps.Add(float64(n))
	}
}

// RecordDBQuery 记录数据库查询
func (m *ProgressionMetrics) RecordDBQuery(operation string, success bool, duration float64) {
	result := "success"
	if !success {
		result = "failed"
	}
	m.DBQueryTotal.WithLabelValues(operation, result).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// RecordLockWait 记录锁等待
func (m *ProgressionMetrics) RecordLockWait(scope string, wait time.Duration) {
	m.LockWaitDuration.WithLabelValues(scope).Observe(wait.Seconds())
}
