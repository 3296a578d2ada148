// Package validation implements the account field validators.
//
// The email and full-name rules are regular expressions; the password rule is
// checked procedurally because RE2 has no lookahead support.
package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	emailField    = "email"
	fullNameField = "fullName"
	passwordField = "password"

	// MinPasswordLength defines the minimum allowed password length
	MinPasswordLength = 8
)

var (
	// Local part is either dot-separated runs of safe characters or a quoted
	// string; domain is dot-separated labels ending in a >=2 letter TLD, or a
	// bracketed IPv4 literal.
	emailRegex = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

	// Letter runs optionally separated by a single apostrophe, comma, period,
	// hyphen, space, or a letter-plus-space pair. Rejects digits.
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z]+(([',. -][a-zA-Z ])?[a-zA-Z]*)*$`)
)

var fieldMessages = map[string]string{
	emailField:    "Invalid email format",
	fullNameField: "Full name can only contain letters, spaces, apostrophes, hyphens, and periods",
	passwordField: "Password must contain at least 8 characters, including one uppercase letter, one lowercase letter, and one number",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Registration only fails for empty tag names.
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_fullname", func(fl validator.FieldLevel) bool {
		return fullNameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})

	return v
}

// accountInput carries the three account fields through the validator. The
// struct field order determines the order checks run in, which has no
// observable effect since every failing field is reported.
type accountInput struct {
	Email    string `validate:"account_email"`
	FullName string `validate:"account_fullname"`
	Password string `validate:"account_password"`
}

// structToField maps validator struct field names to API field names.
var structToField = map[string]string{
	"Email":    emailField,
	"FullName": fullNameField,
	"Password": passwordField,
}

// ValidateAccount checks the three account fields against their format rules.
// It returns a map of field name to error message for every field that fails;
// an empty map means all fields are valid.
func ValidateAccount(email, fullName, password string) map[string]string {
	fields := map[string]string{}

	err := validate.Struct(accountInput{
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err == nil {
		return fields
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			if name, known := structToField[e.StructField()]; known {
				fields[name] = fieldMessages[name]
			}
		}
	}

	return fields
}

// validPassword reports whether the password is at least MinPasswordLength
// characters and contains a digit, a lowercase and an uppercase letter.
func validPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	return hasDigit && hasLower && hasUpper
}
