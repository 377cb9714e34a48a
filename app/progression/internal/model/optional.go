package model

// Optional 显式的可缺省值，零值为 None
type Optional[T any] struct {
	value T
	ok    bool
}

// Some 构造有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None 构造缺省的 Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get 返回值及是否存在
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome 是否有值
func (o Optional[T]) IsSome() bool {
	return o.ok
}

// OrElse 缺省时返回 def
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr 转换为指针，None 返回 nil（写库时映射 NULL）
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// FromPtr 从指针构造，nil 为 None
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}
