package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/limbo/coco/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("practice_name", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if strings.TrimSpace(value) != value {
				return false
			}
			for _, char := range value {
				// Letters, digits, spaces and a little punctuation
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && !strings.ContainsRune(" -'&.,", char) {
					return false
				}
			}
			return true
		})
	})
}

// ValidateStruct runs the shared validator. Failures wrap ErrValidation.
func ValidateStruct(v any) error {
	InitValidator()
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed on %s", errorvalues.ErrValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %s", errorvalues.ErrValidation, err.Error())
	}
	return nil
}
