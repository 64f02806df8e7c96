package core

import (
	"sync"

	"github.com/nomad-coffee/client/internal/auth"
)

// Form holds the values and field errors of one auth screen.
type Form struct {
	mode      Mode
	validator *Validator

	mu      sync.Mutex
	values  map[Field]string
	errors  map[Field]string
	blurred map[Field]bool
}

func NewForm(mode Mode, v *Validator) *Form {
	if v == nil {
		v = NewValidator()
	}
	f := &Form{mode: mode, validator: v}
	f.Reset()
	return f
}

func (f *Form) Mode() Mode { return f.mode }

// Reset empties every value and error.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[Field]string, len(AllFields))
	f.errors = make(map[Field]string, len(AllFields))
	f.blurred = make(map[Field]bool, len(AllFields))
	for _, field := range AllFields {
		f.values[field] = ""
	}
}

// SetValue stores the current text of a field. Once a field has been blurred
// its error follows every edit, and so do the errors of fields compared against it.
// It returns the fields whose recorded error may have changed.
func (f *Form) SetValue(field Field, value string) []Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value

	changed := []Field{field}
	f.recheckLocked(field)
	for _, other := range f.mode.Fields() {
		if other != field && f.comparesWith(other, field) {
			f.recheckLocked(other)
			changed = append(changed, other)
		}
	}
	return changed
}

func (f *Form) recheckLocked(field Field) {
	if f.blurred[field] || f.errors[field] != "" {
		f.errors[field] = f.checkLocked(field)
	}
}

func (f *Form) comparesWith(field, other Field) bool {
	for _, rule := range f.mode.Rules(field) {
		if rule.Other == other {
			return true
		}
	}
	return false
}

func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Blur validates field as it loses focus and returns its error message.
func (f *Form) Blur(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blurred[field] = true
	msg := f.checkLocked(field)
	f.errors[field] = msg
	return msg
}

// Check evaluates field against its rules without recording the result.
func (f *Form) Check(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkLocked(field)
}

func (f *Form) checkLocked(field Field) string {
	if !f.mode.Has(field) {
		return ""
	}
	return f.validator.Check(f.mode.Rules(field), f.values[field], func(other Field) string {
		return f.values[other]
	})
}

// FieldError returns the message recorded by the last blur or full validation.
func (f *Form) FieldError(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Valid is the aggregate validity of the fields of the current mode.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range f.mode.Fields() {
		if f.checkLocked(field) != "" {
			return false
		}
	}
	return true
}

// ValidateAll records the error of every field of the current mode and reports validity.
// Every field then behaves as blurred.
func (f *Form) ValidateAll() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	valid := true
	for _, field := range f.mode.Fields() {
		msg := f.checkLocked(field)
		f.errors[field] = msg
		f.blurred[field] = true
		if msg != "" {
			valid = false
		}
	}
	return valid
}

func (f *Form) Credentials() auth.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return auth.Credentials{
		Email:    f.values[FieldEmail],
		Password: f.values[FieldPassword],
	}
}

func (f *Form) NewAccount() auth.NewAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return auth.NewAccount{
		Email:    f.values[FieldEmail],
		Username: f.values[FieldUsername],
		Password: f.values[FieldPassword],
	}
}
