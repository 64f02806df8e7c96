package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillSignup(f *Form, email, username, password, password2 string) {
	f.SetValue(FieldEmail, email)
	f.SetValue(FieldUsername, username)
	f.SetValue(FieldPassword, password)
	f.SetValue(FieldPassword2, password2)
}

func TestFormLoginValidity(t *testing.T) {
	f := NewForm(ModeLogin, nil)
	require.False(t, f.Valid())

	f.SetValue(FieldEmail, "a@b.com")
	require.False(t, f.Valid())

	f.SetValue(FieldPassword, "12345678")
	require.True(t, f.Valid())

	// signup-only fields do not count in login mode
	f.SetValue(FieldPassword2, "something else")
	require.True(t, f.Valid())
}

func TestFormAnyViolationMakesFormInvalid(t *testing.T) {
	valid := map[Field]string{
		FieldEmail:     "a@b.com",
		FieldUsername:  "abcd",
		FieldPassword:  "12345678",
		FieldPassword2: "12345678",
	}
	invalid := map[Field][]string{
		FieldEmail:     {"", "abc", "not-an-email", "aaaaaaaaaaaaaaaaaaaaaaaaaa@b.com"},
		FieldUsername:  {"", "abc", "abcdefghijklmnopq"},
		FieldPassword:  {"", "1234567", "123456789012345678901"},
		FieldPassword2: {"", "87654321"},
	}

	for field, values := range invalid {
		for _, bad := range values {
			f := NewForm(ModeSignup, nil)
			for k, v := range valid {
				f.SetValue(k, v)
			}
			f.SetValue(field, bad)
			assert.False(t, f.Valid(), "%s=%q should invalidate the form", field, bad)
		}
	}
}

func TestFormBlurRecordsError(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	f.SetValue(FieldEmail, "abc")

	assert.Equal(t, "Must be at least 4 characters.", f.Blur(FieldEmail))
	assert.Equal(t, "Must be at least 4 characters.", f.FieldError(FieldEmail))

	// fixing the value clears the shown error without another blur
	f.SetValue(FieldEmail, "a@b.com")
	assert.Equal(t, "", f.FieldError(FieldEmail))

	// and breaking it again brings the error back
	f.SetValue(FieldEmail, "ab")
	assert.Equal(t, "Must be at least 4 characters.", f.FieldError(FieldEmail))
}

func TestFormErrorsWaitForBlur(t *testing.T) {
	f := NewForm(ModeSignup, nil)

	assert.Equal(t, []Field{FieldEmail}, f.SetValue(FieldEmail, "ab"))
	assert.Equal(t, "", f.FieldError(FieldEmail))
}

func TestFormPasswordEditRechecksConfirmation(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	f.SetValue(FieldPassword, "12345678")
	f.SetValue(FieldPassword2, "87654321")
	require.Equal(t, "Passwords do not match.", f.Blur(FieldPassword2))

	changed := f.SetValue(FieldPassword, "87654321")
	assert.Equal(t, []Field{FieldPassword, FieldPassword2}, changed)
	assert.Equal(t, "", f.FieldError(FieldPassword2))

	f.SetValue(FieldPassword, "00000000")
	assert.Equal(t, "Passwords do not match.", f.FieldError(FieldPassword2))
}

func TestFormPasswordEditLeavesUntouchedConfirmationAlone(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	f.SetValue(FieldPassword2, "87654321")

	f.SetValue(FieldPassword, "12345678")
	assert.Equal(t, "", f.FieldError(FieldPassword2))
}

func TestFormLoginPasswordEditHasNoDependents(t *testing.T) {
	f := NewForm(ModeLogin, nil)
	assert.Equal(t, []Field{FieldPassword}, f.SetValue(FieldPassword, "12345678"))
}

func TestFormPasswordConfirmationTracksPassword(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	fillSignup(f, "a@b.com", "abcd", "12345678", "12345678")
	require.Equal(t, "", f.Check(FieldPassword2))
	require.True(t, f.Valid())

	f.SetValue(FieldPassword, "abcdefgh")
	assert.Equal(t, "Passwords do not match.", f.Check(FieldPassword2))
	assert.False(t, f.Valid())
}

func TestFormValidateAll(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	fillSignup(f, "a@b.com", "", "12345678", "1234")

	assert.False(t, f.ValidateAll())
	assert.Equal(t, "", f.FieldError(FieldEmail))
	assert.Equal(t, "Please enter a username.", f.FieldError(FieldUsername))
	assert.Equal(t, "Passwords do not match.", f.FieldError(FieldPassword2))
}

func TestFormReset(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	fillSignup(f, "a@b.com", "abcd", "1", "2")
	f.ValidateAll()

	f.Reset()
	for _, field := range AllFields {
		assert.Equal(t, "", f.Value(field))
		assert.Equal(t, "", f.FieldError(field))
	}

	// blur marks are gone too, so a bad value stays quiet until the next blur
	f.SetValue(FieldEmail, "ab")
	assert.Equal(t, "", f.FieldError(FieldEmail))
}

func TestFormSubmissionPayloads(t *testing.T) {
	f := NewForm(ModeSignup, nil)
	fillSignup(f, "a@b.com", "abcd", "12345678", "12345678")

	creds := f.Credentials()
	assert.Equal(t, "a@b.com", creds.Email)
	assert.Equal(t, "12345678", creds.Password)

	account := f.NewAccount()
	assert.Equal(t, "abcd", account.Username)
	assert.Equal(t, "a@b.com", account.Email)
	assert.Equal(t, "12345678", account.Password)
}
