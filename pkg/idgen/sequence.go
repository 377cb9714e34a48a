package idgen

import "sync/atomic"

// Sequence 进程内自增ID生成器，用于内存存储与测试
type Sequence struct {
	next atomic.Int64
}

// NewSequence 创建从 start 开始的自增生成器
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start - 1)
	return s
}

func (s *Sequence) NextID() (int64, error) {
	return s.next.Add(1), nil
}
