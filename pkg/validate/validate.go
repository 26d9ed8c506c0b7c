// Package validate runs go-playground/validator rules and reports failures as
// a field → message map keyed by JSON field name.
//
//	type Input struct {
//	    Email  string          `json:"email"  validate:"required,email"`
//	    Amount decimal.Decimal `json:"amount" validate:"gt=0"`
//	    Method string          `json:"method" validate:"required,oneof=wallet card crypto"`
//	}
//	errs := validate.Struct(in)
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		// Money fields are compared as numbers by gt/gte/lte.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
	return v
}

// Struct validates s. The returned map is empty when s is valid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		key := fieldKey(fe)
		if _, seen := errs[key]; seen {
			continue
		}
		errs[key] = message(fe)
	}
	return errs
}

// HasErrors returns true when errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// fieldKey drops the root struct name: "PlaceOrderInput.shipping.zip" → "shipping.zip".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	param := strings.ReplaceAll(fe.Param(), " ", ", ")

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", field)
	case "required_if":
		return fmt.Sprintf("The %s field is required for this payment method.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, param)
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", field)
	case "len":
		return fmt.Sprintf("The %s must be exactly %s characters.", field, param)
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s must contain at least %s item(s).", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "lt":
		return fmt.Sprintf("The %s must be less than %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s may not be greater than %s.", field, param)
	case "alphanum":
		return fmt.Sprintf("The %s may only contain letters and numbers.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s is invalid (%s).", field, fe.Tag())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
