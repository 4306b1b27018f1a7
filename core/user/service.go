package user

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// SimulatedProvider accepts any well-formed credentials.
// Nothing is stored: there is no account to look up and no password to check.
type SimulatedProvider struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewSimulatedProvider(validate *validator.Validate, translator ut.Translator) *SimulatedProvider {
	return &SimulatedProvider{validate: validate, translator: translator}
}

// SignIn validates the form and derives the user's name from the email address.
func (p *SimulatedProvider) SignIn(_ context.Context, creds Credentials) (User, error) {
	if err := creds.Validate(p.validate, p.translator); err != nil {
		return User{}, err
	}
	first, last := NameFromEmail(creds.Email)
	return User{
		Email:     creds.Email,
		StudentID: creds.StudentID,
		FirstName: first,
		LastName:  last,
	}, nil
}

// Register validates the form and returns the user it describes.
// An email that "registered" before is accepted again.
func (p *SimulatedProvider) Register(_ context.Context, prof Profile) (User, error) {
	if err := prof.Validate(p.validate, p.translator); err != nil {
		return User{}, err
	}
	return User{
		Email:     prof.Email,
		StudentID: prof.StudentID,
		FirstName: prof.FirstName,
		LastName:  prof.LastName,
	}, nil
}
