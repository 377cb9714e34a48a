package config

import (
	"fmt"
	"reflect"
)

// MergeConfig 以 base 为底，用 override 中的非零值覆盖，返回新对象
//   - base 与 override 均为 nil 时返回错误
//   - 任一为 nil 时返回另一方的副本
//   - 零值字段视为"未配置"，不会覆盖 base，因此 bool 只能由 false 覆盖为 true
func MergeConfig[T any](base, override *T) (*T, error) {
	if base == nil && override == nil {
		return nil, fmt.Errorf("merge config: %w", ErrNilConfig)
	}
	if base == nil {
		out := *override
		return &out, nil
	}

	out := *base
	if override == nil {
		return &out, nil
	}

	if err := overlay(reflect.ValueOf(&out).Elem(), reflect.ValueOf(override).Elem()); err != nil {
		return nil, err
	}
	return &out, nil
}

func overlay(dst, src reflect.Value) error {
	if !src.IsValid() || src.IsZero() {
		return nil
	}
	if dst.Type() != src.Type() {
		return fmt.Errorf("merge config: type mismatch %s vs %s", dst.Type(), src.Type())
	}

	switch src.Kind() {
	case reflect.Struct:
		t := src.Type()
		for i := 0; i < src.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := overlay(dst.Field(i), src.Field(i)); err != nil {
				return fmt.Errorf("%s: %w", t.Field(i).Name, err)
			}
		}
		return nil

	case reflect.Map:
		merged := reflect.MakeMapWithSize(src.Type(), dst.Len()+src.Len())
		iter := dst.MapRange()
		for iter.Next() {
			merged.SetMapIndex(iter.Key(), iter.Value())
		}
		iter = src.MapRange()
		for iter.Next() {
			merged.SetMapIndex(iter.Key(), iter.Value())
		}
		dst.Set(merged)
		return nil

	case reflect.Pointer:
		if dst.IsNil() || src.Elem().Kind() != reflect.Struct {
			dst.Set(src)
			return nil
		}
		cp := reflect.New(src.Elem().Type())
		cp.Elem().Set(dst.Elem())
		if err := overlay(cp.Elem(), src.Elem()); err != nil {
			return err
		}
		dst.Set(cp)
		return nil

	default:
		// 基础类型与切片整体替换
		dst.Set(src)
		return nil
	}
}
