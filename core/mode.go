package core

import "fmt"

// Mode selects between the log in and the sign up variant of the auth form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// modeSpec is everything that differs between the two variants
type modeSpec struct {
	name        string
	title       string
	submitLabel string
	toggleLabel string
	fields      []Field
	rules       map[Field]RuleSet
	// next maps a field to the field that receives focus on "return".
	// Fields missing from the map dismiss focus instead.
	next map[Field]Field
}

var (
	emailRules = RuleSet{
		{Tag: "required", Message: "Please enter your email."},
		{Tag: "min=4", Message: "Must be at least 4 characters."},
		{Tag: "max=30", Message: "Too long. 30 characters max."},
		{Tag: emailPatternTag, Message: "Please enter a valid email address."},
	}
	usernameRules = RuleSet{
		{Tag: "required", Message: "Please enter a username."},
		{Tag: "min=4", Message: "Must be at least 4 characters."},
		{Tag: "max=16", Message: "Too long. 16 characters max."},
	}
	passwordRules = RuleSet{
		{Tag: "required", Message: "Please enter your password."},
		{Tag: "min=8", Message: "Must be at least 8 characters."},
		{Tag: "max=20", Message: "Too long. 20 characters max."},
	}
	password2Rules = RuleSet{
		{Tag: "required", Message: "Please confirm your password."},
		{Tag: "eqfield", Other: FieldPassword, Message: "Passwords do not match."},
	}
)

var modeSpecs = map[Mode]modeSpec{
	ModeLogin: {
		name:        "login",
		title:       "Log In",
		submitLabel: "Log in",
		toggleLabel: "Don't have an account? Sign up",
		fields:      []Field{FieldEmail, FieldPassword},
		rules: map[Field]RuleSet{
			FieldEmail:    emailRules,
			FieldPassword: passwordRules,
		},
		next: map[Field]Field{
			FieldEmail:    FieldPassword,
			FieldUsername: FieldPassword,
		},
	},
	ModeSignup: {
		name:        "signup",
		title:       "Sign Up",
		submitLabel: "Sign Up",
		toggleLabel: "Already have an account? Log in",
		fields:      []Field{FieldEmail, FieldUsername, FieldPassword, FieldPassword2},
		rules: map[Field]RuleSet{
			FieldEmail:     emailRules,
			FieldUsername:  usernameRules,
			FieldPassword:  passwordRules,
			FieldPassword2: password2Rules,
		},
		next: map[Field]Field{
			FieldEmail:    FieldUsername,
			FieldUsername: FieldPassword,
			FieldPassword: FieldPassword2,
		},
	},
}

func (m Mode) spec() modeSpec {
	s, ok := modeSpecs[m]
	if !ok {
		panic(fmt.Sprintf("core: unknown mode %d", int(m)))
	}
	return s
}

func (m Mode) String() string { return m.spec().name }

func (m Mode) Title() string { return m.spec().title }

func (m Mode) SubmitLabel() string { return m.spec().submitLabel }

func (m Mode) ToggleLabel() string { return m.spec().toggleLabel }

// Fields returns the fields shown in this mode, in display order.
func (m Mode) Fields() []Field {
	fields := m.spec().fields
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func (m Mode) Has(field Field) bool {
	_, ok := m.spec().rules[field]
	return ok
}

func (m Mode) Rules(field Field) RuleSet {
	return m.spec().rules[field]
}

// Next returns the field that should take focus after field is submitted from the keyboard.
// ok is false when focus should be dismissed instead.
func (m Mode) Next(field Field) (next Field, ok bool) {
	next, ok = m.spec().next[field]
	return next, ok
}

func (m Mode) Toggle() Mode {
	if m == ModeSignup {
		return ModeLogin
	}
	return ModeSignup
}
