package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validator over a request payload and converts
// the first failure into a ValidationError so callers get a 400.
func ValidateStruct(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				return &ValidationError{
					Message: fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()),
				}
			}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}
