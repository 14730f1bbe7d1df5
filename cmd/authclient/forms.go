package main

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type registerForm struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type resetForm struct {
	Email string `validate:"required,email"`
}

// fieldMessages maps field and failed tag to the text shown next to the input.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
	},
	"Email": {
		"required": "Email is required",
		"email":    "Invalid email format",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"Confirm": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
}

// FieldErrors holds one message per invalid field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, strings.ToLower(field)+": "+fe[field])
	}
	return strings.Join(parts, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateForm trims the text fields and checks form, returning FieldErrors
// when any field is invalid.
func validateForm(form any) error {
	switch f := form.(type) {
	case *registerForm:
		f.Name = strings.TrimSpace(f.Name)
		f.Email = strings.TrimSpace(f.Email)
	case *loginForm:
		f.Email = strings.TrimSpace(f.Email)
	case *resetForm:
		f.Email = strings.TrimSpace(f.Email)
	}

	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		if _, seen := fe[v.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[v.Field()][v.Tag()]
		if !ok {
			msg = "Please check your input data"
		}
		fe[v.Field()] = msg
	}
	return fe
}
