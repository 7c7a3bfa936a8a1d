package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
)

// BindAndValidate binds the JSON body into `out` and runs validation.
// The returned error is an *apperr.Error of kind Validation.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid request body: %s", err.Error()))
	}
	return Check(v, out)
}

// BindQueryAndValidate binds query parameters (`form` tags) into `out`.
func BindQueryAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindQuery(out); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid query parameters: %s", err.Error()))
	}
	return Check(v, out)
}

// Check validates a struct and flattens field errors into one detail line.
func Check(v *validatorv10.Validate, out interface{}) error {
	if err := v.Struct(out); err != nil {
		return apperr.Validation(describe(err))
	}
	return nil
}

func describe(err error) string {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := fieldPath(fe.Namespace())
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldPath drops the top-level struct name from a namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
