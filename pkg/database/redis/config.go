package redis

import (
	"fmt"
	"time"
)

// Config Redis 配置（Standalone/Cluster 两种模式，必须且只能配置一种）
type Config struct {
	Standalone *NodeConfig    `mapstructure:"standalone" json:"standalone,omitempty"`
	Cluster    *ClusterConfig `mapstructure:"cluster" json:"cluster,omitempty"`
	Pool       PoolConfig     `mapstructure:"pool" json:"pool"`
}

// NodeConfig 单节点配置
type NodeConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Password string `mapstructure:"password" json:"password"`
	DB       int    `mapstructure:"db" json:"db"` // 数据库索引（0-15）
}

// Addr 返回 host:port
func (n *NodeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

// ClusterConfig 集群配置
type ClusterConfig struct {
	Addrs    []string `mapstructure:"addrs" json:"addrs"` // host:port
	Password string   `mapstructure:"password" json:"password"`
}

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int           `mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" json:"max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" json:"conn_max_idle_time"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout" json:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if (c.Standalone == nil) == (c.Cluster == nil) {
		return ErrInvalidConfig
	}
	if c.Cluster != nil && len(c.Cluster.Addrs) == 0 {
		return fmt.Errorf("%w: cluster.addrs is empty", ErrInvalidConfig)
	}
	return nil
}

// IsCluster 是否为集群模式
func (c *Config) IsCluster() bool {
	return c.Cluster != nil
}
