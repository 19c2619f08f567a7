package models

import (
	"errors"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/validator"

	playground "github.com/go-playground/validator/v10"
)

// validateStruct runs the shared validator over v and converts field errors to
// a validation error using the per-field messages. The first failing field,
// in struct order, becomes the top-level message.
func validateStruct(v any, messages map[string]string) error {
	err := validator.GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Internal(err)
	}

	appErr := &apperror.Error{
		Kind:   apperror.KindValidation,
		Fields: make(map[string]string, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if appErr.Message == "" {
			appErr.Message = msg
		}
		appErr.Fields[fe.Field()] = msg
	}
	return appErr
}
