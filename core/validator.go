package core

import (
	"regexp"

	"gopkg.in/go-playground/validator.v9"
)

// Field identifies one input of the auth form
type Field string

const (
	FieldEmail     Field = "email"
	FieldUsername  Field = "username"
	FieldPassword  Field = "password"
	FieldPassword2 Field = "password2"
)

// AllFields lists every field the form knows about, whatever the mode
var AllFields = []Field{FieldEmail, FieldUsername, FieldPassword, FieldPassword2}

// Rule is one validation constraint of a field. Tag uses validator tag syntax.
// When Other is set the rule is checked against that field's current value.
type Rule struct {
	Tag     string
	Other   Field
	Message string
}

// RuleSet is evaluated in order; the first failing rule wins.
type RuleSet []Rule

const emailPatternTag = "emailpattern"

// Substring match on purpose: "x a@b.co" is accepted the same way the mobile app did.
var emailPattern = regexp.MustCompile(`\w+@\w+\.\w+`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation(emailPatternTag, EmailPattern); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// EmailPattern reports whether the field contains something shaped like an e-mail address.
func EmailPattern(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// Check returns the message of the first rule value violates, or "" when valid.
// lookup resolves the current value of other fields for cross-field rules.
func (v *Validator) Check(rules RuleSet, value string, lookup func(Field) string) string {
	for _, rule := range rules {
		var err error
		if rule.Other != "" {
			err = v.validate.VarWithValue(value, lookup(rule.Other), rule.Tag)
		} else {
			err = v.validate.Var(value, rule.Tag)
		}
		if err != nil {
			return rule.Message
		}
	}
	return ""
}
