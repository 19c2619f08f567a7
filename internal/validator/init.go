package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is deliberately loose: anything@anything.anything without whitespace.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names in field errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// IsEmail reports whether s passes the looseemail rule.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
