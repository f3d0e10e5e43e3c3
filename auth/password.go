package auth

import "unicode"

const minPasswordLen = 8

// A ValidationError rejects a malformed submission before any state is
// changed. It is shown to the user as a form-level message.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// CheckPasswordComplexity requires a minimum length plus at least one
// uppercase letter, one lowercase letter, one digit and one special character.
func CheckPasswordComplexity(password string) error {
	if len(password) < minPasswordLen {
		return ValidationError("password must be at least 8 characters long")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper {
		return ValidationError("password must contain at least one uppercase letter")
	}
	if !lower {
		return ValidationError("password must contain at least one lowercase letter")
	}
	if !digit {
		return ValidationError("password must contain at least one digit")
	}
	if !special {
		return ValidationError("password must contain at least one special character")
	}
	return nil
}
