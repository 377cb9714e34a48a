package idgen

// Generator ID生成器接口
type Generator interface {
	// NextID 生成下一个唯一ID，返回值恒为正
	NextID() (int64, error)
}

// Config ID生成器配置
type Config struct {
	// MachineID 机器ID (0-65535)，多实例部署时必须互不相同
	MachineID uint16 `mapstructure:"machine_id" json:"machine_id"`
}
