package handlers

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const usernameRule = "Имя пользователя: от 3 до 64 латинских букв, цифр или _"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,64}$`)

// NewValidator returns a validator that also knows the "username" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// invalidUsername reports whether validation failed on the Username field.
func invalidUsername(err error) bool {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return false
	}
	for _, e := range errs {
		if e.Field() == "Username" {
			return true
		}
	}
	return false
}
