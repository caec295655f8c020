package sandbox

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var defaultValidator = &paramsValidator{}

type paramsValidator struct {
	once     sync.Once
	validate *validator.Validate
}

// Validate 参数验证
func (v *paramsValidator) Validate(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		return v.Validate(value.Elem().Interface())
	case reflect.Struct:
		v.lazyInit()
		if err := v.validate.Struct(obj); err != nil {
			return fmt.Errorf("invalid params: %w", err)
		}
	}

	return nil
}

// lazyInit 延迟初始化
func (v *paramsValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = validator.New()
	})
}
