package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate   = newValidator()
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	// field names in error maps follow the json tag
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	return v
}

func Validator() *validator.Validate { return validate }

// ValidateStruct returns nil or a field → messages map ready for JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "invalid email format"
	case "phone":
		return "invalid phone number"
	case "url":
		return "invalid url"
	case "uuid", "uuid4":
		return "invalid id"
	case "max":
		return "exceeds maximum " + fe.Param()
	case "min":
		return "below minimum " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "gtfield", "gtefield":
		return "must be after " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value (" + fe.Tag() + ")"
	}
}
