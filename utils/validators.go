// File: /utils/validators.go
package utils

import (
	"regexp"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Accepts formatted numbers like +7(900)-000-00-01 as well as bare
	// digit strings with an optional leading +.
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9()\-\s]{6,30}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidPassword(password string) bool {
	return len(password) >= 6
}

const MaxPostTextLen = 2000

func IsValidPostText(text string) bool {
	return text != "" && utf8.RuneCountInString(text) <= MaxPostTextLen
}
