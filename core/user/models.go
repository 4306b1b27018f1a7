package user

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fallback names for an email without a "first.last" local part.
const (
	DefaultFirstName = "John"
	DefaultLastName  = "Doe"
)

// User is the transient session user; it lives only as long as the session.
type User struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsZero reports whether no user is signed in.
func (u *User) IsZero() bool {
	return u == nil || (u.Email == "" && u.StudentID == "")
}

// Credentials is the sign-in form.
type Credentials struct {
	Email     string `json:"email" validate:"required,sfsuemail"`
	StudentID string `json:"student_id" validate:"required,studentid"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (c *Credentials) clean() {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.StudentID = strings.TrimSpace(c.StudentID)
}

// Profile is the registration form.
type Profile struct {
	Email           string `json:"email" validate:"required,sfsuemail"`
	StudentID       string `json:"student_id" validate:"required,studentid"`
	FirstName       string `json:"first_name" validate:"required,min=2"`
	LastName        string `json:"last_name" validate:"required,min=2"`
	Password        string `json:"password" validate:"required,min=8,pwdcplx"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (p *Profile) clean() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
}

// NameFromEmail derives a first and last name from a "first.last@domain" address.
// Missing parts fall back to John / Doe.
func NameFromEmail(email string) (first, last string) {
	local := strings.SplitN(email, "@", 2)[0]
	parts := strings.Split(local, ".")

	first, last = DefaultFirstName, DefaultLastName
	if len(parts) > 0 && parts[0] != "" {
		first = capitalize(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		last = capitalize(parts[1])
	}
	return first, last
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
