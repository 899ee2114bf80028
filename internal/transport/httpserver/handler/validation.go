package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const msgInvalidField = "Falta el campo requerido o es inválido: "

// fieldError names the request field that failed decoding or validation.
type fieldError struct {
	Field string
}

func (e *fieldError) Error() string {
	return msgInvalidField + e.Field
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns a *fieldError for the first failing field.
func (h *Handlers) validateStruct(value interface{}) error {
	err := h.validate.Struct(value)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return &fieldError{Field: validationErrs[0].Field()}
	}
	return err
}
