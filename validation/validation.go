// Package validation contains the pure input checks shared by the user and
// message modules: username format and message length. The checks have no side
// effects; limits are passed in by the caller from the loaded configuration.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/user/chatstore-go/apperror"
)

var validate = validator.New()

// usernamePattern enforces the character rules: the first and last character
// must be alphanumeric, interior characters may also be '.', '_', '+' or '-'.
// Length bounds are enforced separately because the upper bound is configurable.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*[a-zA-Z0-9]$`)

func init() {
	// Registered once so the rule can be combined with validator's builtin
	// min/max tags below.
	if err := validate.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ValidateUsername checks a username against the allowed pattern: length 3 to
// maxLength, alphanumeric first and last character, interior characters
// alphanumeric or one of '.', '_', '+', '-'.
func ValidateUsername(username string, maxLength int) error {
	tag := fmt.Sprintf("required,min=3,max=%d,username_chars", maxLength)
	if err := validate.Var(username, tag); err != nil {
		return apperror.NewInvalidUsernameError(fmt.Sprintf(
			"username must be 3-%d characters, start and end with a letter or digit, and contain only letters, digits and . _ + -",
			maxLength,
		))
	}
	return nil
}

// ValidateMessage checks that a message body does not exceed maxLength
// characters (runes, not bytes). A message of exactly maxLength characters
// is accepted.
func ValidateMessage(message string, maxLength int) error {
	if utf8.RuneCountInString(message) > maxLength {
		return apperror.NewMessageTooLongError(fmt.Sprintf("Max message length(%d) exceeded", maxLength))
	}
	return nil
}
