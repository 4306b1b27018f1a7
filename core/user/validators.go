package user

import (
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gateway/core"
)

var (
	// custom validation tags & texts
	emailTag  = "sfsuemail"
	emailText = "{0} must be a campus email address"

	studentIDTag   = "studentid"
	studentIDText  = "{0} must be 8-9 digits"
	studentIDRegex = regexp.MustCompile(`^[0-9]{8,9}$`)

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = "password must contain at least 1 uppercase character, 1 lowercase character and 1 digit"

	// form messages, keyed "field.tag"
	messages = core.FieldMessages{
		"email.required":            "Email is required",
		"email.sfsuemail":           "Must be a valid SFSU email address",
		"student_id.required":       "Student ID is required",
		"student_id.studentid":      "Student ID must be 8-9 digits",
		"first_name.required":       "First name is required",
		"first_name.min":            "First name must be at least 2 characters",
		"last_name.required":        "Last name is required",
		"last_name.min":             "Last name must be at least 2 characters",
		"password.required":         "Password is required",
		"password.pwdcplx":          "Password must contain uppercase, lowercase, and number",
		"password_confirm.required": "Please confirm your password",
		"password_confirm.eqfield":  "Passwords do not match",
	}
	signInMinLenMsg   = "Password must be at least 6 characters"
	registerMinLenMsg = "Password must be at least 8 characters"
)

// InitValidators registers the user validators.
// `domains` are the accepted email suffixes, e.g. "@sfsu.edu".
func InitValidators(validate *validator.Validate, translator ut.Translator, domains []string) {
	_ = validate.RegisterValidation(emailTag, emailValidation(domains))
	core.RegisterCustomTranslation(validate, translator, emailTag, emailText)

	_ = validate.RegisterValidation(studentIDTag, studentIDValidation)
	core.RegisterCustomTranslation(validate, translator, studentIDTag, studentIDText)

	_ = validate.RegisterValidation(pwdComplexityTag, pwdComplexityValidation)
	core.RegisterCustomTranslation(validate, translator, pwdComplexityTag, pwdComplexityText)
}

func withMinLen(msg string) core.FieldMessages {
	msgs := make(core.FieldMessages, len(messages)+1)
	for k, v := range messages {
		msgs[k] = v
	}
	msgs["password.min"] = msg
	return msgs
}

var (
	signInMessages   = withMinLen(signInMinLenMsg)
	registerMessages = withMinLen(registerMinLenMsg)
)

// Validate cleans the form and reports every invalid field at once.
func (c *Credentials) Validate(validate *validator.Validate, translator ut.Translator) error {
	c.clean()
	return core.ValidateStruct(validate, translator, c, signInMessages)
}

// Validate cleans the form and reports every invalid field at once.
func (p *Profile) Validate(validate *validator.Validate, translator ut.Translator) error {
	p.clean()
	return core.ValidateStruct(validate, translator, p, registerMessages)
}

// Custom Validators

// emailValidation accepts addresses ending with one of the `domains`.
func emailValidation(domains []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		email := fl.Field().String()
		for _, d := range domains {
			if strings.HasSuffix(email, strings.ToLower(d)) {
				return true
			}
		}
		return false
	}
}

func studentIDValidation(fl validator.FieldLevel) bool {
	return studentIDRegex.MatchString(fl.Field().String())
}

// pwdComplexityValidation requires 1 lowercase, 1 uppercase and 1 digit.
func pwdComplexityValidation(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDig bool
	for _, char := range fl.Field().String() {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDig = true
		}
	}
	return hasUpper && hasLower && hasDig
}
