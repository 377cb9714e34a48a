package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator 配置验证器
type Validator struct {
	validate *validator.Validate
}

// NewValidator 创建验证器，错误信息中的字段名取 mapstructure tag，与配置文件中的 key 一致
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// RegisterRule 注册自定义验证规则
func (v *Validator) RegisterRule(tag string, fn validator.Func) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register validation %s: %w", tag, err)
	}
	return nil
}

// Validate 验证配置结构体
func (v *Validator) Validate(cfg any) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if rv := reflect.ValueOf(cfg); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ErrNilConfig
	}

	if err := v.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, describe(err))
	}
	return nil
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// 去掉顶层结构体名，保留 rules.max_level 形式
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min", "gte":
			msg = "must be at least " + fe.Param()
		case "max", "lte":
			msg = "must be at most " + fe.Param()
		case "gt":
			msg = "must be greater than " + fe.Param()
		case "oneof":
			msg = "must be one of [" + fe.Param() + "]"
		case "gtefield":
			msg = "must not be less than " + fe.Param()
		default:
			msg = "failed on '" + fe.Tag() + "'"
		}
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", path, msg))
	}
	return strings.Join(msgs, "; ")
}
