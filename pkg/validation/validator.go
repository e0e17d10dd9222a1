package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var std = configure(validator.New(validator.WithRequiredStructEnabled()))

// configure makes errors use JSON tag names and registers alias tags.
func configure(v *validator.Validate) *validator.Validate {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8,max=72")
	return v
}

// Init configures the validator used by Gin's binding the same way.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Struct validates a service input. It returns nil when v is valid.
func Struct(v any) map[string]string {
	if err := std.Struct(v); err != nil {
		return ToDetails(err)
	}
	return nil
}

// ToDetails turns a binding or validation error into field -> message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "invalid payload"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the root struct name from the namespace so nested
// fields read as steps[0].description.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var fixed = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"url":      "must be a valid URL",
	"uri":      "must be a valid URI",
	"pwd":      "must be 8 to 72 characters long",
	"unique":   "must contain unique items",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixed[fe.Tag()]; ok {
		return msg
	}
	p := fe.Param()
	unit := ""
	if !isNumber(fe.Kind()) {
		unit = " characters long"
		if fe.Kind() == reflect.Slice {
			unit = " items"
		}
	}
	switch fe.Tag() {
	case "min":
		return "must be at least " + p + unit
	case "max":
		return "must be at most " + p + unit
	case "len":
		return "must be exactly " + p + unit
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "gt":
		return "must be greater than " + p
	case "lt":
		return "must be less than " + p
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(p), ", ")
	}
	if p != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), p)
	}
	return "failed " + fe.Tag()
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
