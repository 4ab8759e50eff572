package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// categories mirrors entity.AssetCategories; pkg code cannot import internal/.
const categories = "paint wheels interior exterior performance"

var std = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	configure(v)
	return v
}

// configure uses JSON tag names in errors and registers alias tags.
func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8,max=72") // bcrypt hashes at most 72 bytes
	v.RegisterAlias("role", "oneof=admin client")
	v.RegisterAlias("category", "oneof="+categories)
}

// Init configures the global validator used by Gin's binding (tag "binding").
// Services validate with the package validator (tag "validate").
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Rule checks one concern of a payload and returns field -> message.
type Rule[T any] func(T) map[string]string

// Run applies every rule in order and merges their field errors. The first
// message reported for a field wins. It returns nil when all rules pass.
func Run[T any](in T, rules ...Rule[T]) map[string]string {
	out := map[string]string{}
	for _, rule := range rules {
		for field, msg := range rule(in) {
			if _, seen := out[field]; !seen {
				out[field] = msg
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Struct is a Rule that evaluates the `validate` tags of in.
func Struct[T any](in T) map[string]string {
	return ToDetails(std.Struct(in))
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		if ute.Field != "" {
			return map[string]string{ute.Field: "must be a " + ute.Type.String()}
		}
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

// fieldPath drops the root struct name from the namespace: specs.horsepower.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// PasswordTooLong is reported for passwords bcrypt cannot hash.
const PasswordTooLong = "max length 72 bytes"

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid id"
	case "url", "uri":
		return "must be a valid URL"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")

	// aliases
	case "pwd":
		if fe.ActualTag() == "max" {
			return PasswordTooLong
		}
		return "min length 8"
	case "role":
		return "must be one of: admin, client"
	case "category":
		return "must be one of: " + strings.Join(strings.Fields(categories), ", ")
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
