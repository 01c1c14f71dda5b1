// File: /utils/validators_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last+tag@example.co.uk"}
	invalid := []string{"", "plain", "no@tld", "@x.com", "a@.com"}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+7(900)-000-00-01", "89001234567", "+1 555 0100"}
	invalid := []string{"", "abc", "+", "12345"}

	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestIsValidPostText(t *testing.T) {
	assert.False(t, IsValidPostText(""))
	assert.True(t, IsValidPostText("hello"))
	assert.True(t, IsValidPostText(strings.Repeat("я", MaxPostTextLen)))
	assert.False(t, IsValidPostText(strings.Repeat("я", MaxPostTextLen+1)))
}
