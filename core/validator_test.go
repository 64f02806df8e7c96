package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func noOthers(Field) string { return "" }

func TestValidatorEmailRules(t *testing.T) {
	v := NewValidator()
	rules := ModeLogin.Rules(FieldEmail)

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Please enter your email."},
		{"too short", "a@b", "Must be at least 4 characters."},
		{"too long", strings.Repeat("a", 25) + "@b.com", "Too long. 30 characters max."},
		{"no at sign", "abcdef.com", "Please enter a valid email address."},
		{"valid", "a@b.com", ""},
		{"pattern is a substring match", "hi a@b.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Check(rules, tc.value, noOthers))
		})
	}
}

func TestValidatorLengthsCountCharacters(t *testing.T) {
	v := NewValidator()
	rules := ModeSignup.Rules(FieldUsername)

	assert.Equal(t, "", v.Check(rules, "커피커피", noOthers))
	assert.Equal(t, "Must be at least 4 characters.", v.Check(rules, "abc", noOthers))
	assert.Equal(t, "Too long. 16 characters max.", v.Check(rules, strings.Repeat("x", 17), noOthers))
}

func TestValidatorPasswordRules(t *testing.T) {
	v := NewValidator()
	rules := ModeLogin.Rules(FieldPassword)

	assert.Equal(t, "Please enter your password.", v.Check(rules, "", noOthers))
	assert.Equal(t, "Must be at least 8 characters.", v.Check(rules, "1234567", noOthers))
	assert.Equal(t, "", v.Check(rules, "12345678", noOthers))
	assert.Equal(t, "Too long. 20 characters max.", v.Check(rules, strings.Repeat("1", 21), noOthers))
}

func TestValidatorPasswordConfirmation(t *testing.T) {
	v := NewValidator()
	rules := ModeSignup.Rules(FieldPassword2)
	password := "12345678"
	lookup := func(f Field) string {
		if f == FieldPassword {
			return password
		}
		return ""
	}

	assert.Equal(t, "", v.Check(rules, "12345678", lookup))
	assert.Equal(t, "Passwords do not match.", v.Check(rules, "12345679", lookup))
	assert.Equal(t, "Please confirm your password.", v.Check(rules, "", lookup))

	// the comparison uses the password value at validation time
	password = "12345679"
	assert.Equal(t, "", v.Check(rules, "12345679", lookup))
}
