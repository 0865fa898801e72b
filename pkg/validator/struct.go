package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

// StructValidator validates request structs using their `binding` tags. It
// satisfies gin's binding.StructValidator so HTTP binding and service-level
// checks apply the same rules.
type StructValidator struct {
	once     sync.Once
	validate *playground.Validate
}

// NewStructValidator creates a validator with the phone rule registered
func NewStructValidator() *StructValidator {
	v := &StructValidator{}
	v.lazyinit()
	return v
}

func (v *StructValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = playground.New()
		v.validate.SetTagName("binding")
		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		phones := NewPhoneValidator()
		_ = v.validate.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
			return phones.IsValid(fl.Field().String())
		})
	})
}

// ValidateStruct validates structs, pointers to structs and slices of them
func (v *StructValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	v.lazyinit()

	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		return v.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Engine returns the underlying validator
func (v *StructValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

// Messages flattens validation errors into field -> message. Errors that are
// not field validation errors are returned under the "request" key.
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// Summary renders messages as a stable single line
func Summary(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
