package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFields(t *testing.T) {
	assert.Equal(t, []Field{FieldEmail, FieldPassword}, ModeLogin.Fields())
	assert.Equal(t, []Field{FieldEmail, FieldUsername, FieldPassword, FieldPassword2}, ModeSignup.Fields())

	assert.False(t, ModeLogin.Has(FieldUsername))
	assert.False(t, ModeLogin.Has(FieldPassword2))
	assert.True(t, ModeSignup.Has(FieldPassword2))
}

func TestModeToggle(t *testing.T) {
	assert.Equal(t, ModeSignup, ModeLogin.Toggle())
	assert.Equal(t, ModeLogin, ModeSignup.Toggle())
	assert.Equal(t, "Log In", ModeLogin.Title())
	assert.Equal(t, "Sign Up", ModeSignup.Title())
}

func TestModeNext(t *testing.T) {
	type step struct {
		from Field
		to   Field
		ok   bool
	}
	cases := map[Mode][]step{
		ModeLogin: {
			{FieldEmail, FieldPassword, true},
			{FieldUsername, FieldPassword, true},
			{FieldPassword, "", false},
			{FieldPassword2, "", false},
		},
		ModeSignup: {
			{FieldEmail, FieldUsername, true},
			{FieldUsername, FieldPassword, true},
			{FieldPassword, FieldPassword2, true},
			{FieldPassword2, "", false},
		},
	}
	for mode, steps := range cases {
		for _, s := range steps {
			got, ok := mode.Next(s.from)
			assert.Equal(t, s.ok, ok, "%s: %s", mode, s.from)
			if s.ok {
				assert.Equal(t, s.to, got, "%s: %s", mode, s.from)
			}
		}
	}
}
