package validation

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. Field errors are reported with their
// JSON names and the custom "notblank" tag rejects whitespace-only strings.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)

	return v
}

// notBlank passes for strings that contain a non-space character.
func notBlank(fl validatorv10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

// StatusUpdate is the body of the status-only PUT endpoints.
type StatusUpdate struct {
	Status string `json:"status" validate:"notblank"`
}

// Login is the body of POST /auth/login.
type Login struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}
