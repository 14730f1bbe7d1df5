package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateForm_Register(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := &registerForm{Name: " John ", Email: " john.doe@example.com ", Password: "secret1", Confirm: "secret1"}
		require.NoError(t, validateForm(form))
		require.Equal(t, "John", form.Name)
		require.Equal(t, "john.doe@example.com", form.Email)
	})

	t.Run("every field wrong", func(t *testing.T) {
		err := validateForm(&registerForm{Name: "J", Email: "not-an-email", Password: "12345", Confirm: "54321"})
		require.Equal(t, FieldErrors{
			"Name":     "Name must be at least 2 characters",
			"Email":    "Invalid email format",
			"Password": "Password must be at least 6 characters",
			"Confirm":  "Passwords do not match",
		}, err)
	})

	t.Run("empty", func(t *testing.T) {
		err := validateForm(&registerForm{})
		require.Equal(t, FieldErrors{
			"Name":     "Name is required",
			"Email":    "Email is required",
			"Password": "Password is required",
			"Confirm":  "Please confirm your password",
		}, err)
		require.Equal(t, "confirm: Please confirm your password; email: Email is required; name: Name is required; password: Password is required", err.Error())
	})
}

func TestValidateForm_Login(t *testing.T) {
	require.NoError(t, validateForm(&loginForm{Email: "john.doe@example.com", Password: "secret1"}))

	err := validateForm(&loginForm{Email: "john.doe@example.com", Password: "123"})
	require.Equal(t, FieldErrors{"Password": "Password must be at least 6 characters"}, err)
}

func TestValidateForm_Reset(t *testing.T) {
	require.NoError(t, validateForm(&resetForm{Email: "john.doe@example.com"}))
	require.Equal(t, FieldErrors{"Email": "Invalid email format"}, validateForm(&resetForm{Email: "john"}))
}
