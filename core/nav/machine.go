package nav

import (
	"context"

	"github.com/trezcool/gateway/core/user"
)

// IdentityProvider checks sign-in and registration forms and returns the session user.
type IdentityProvider interface {
	SignIn(ctx context.Context, creds user.Credentials) (user.User, error)
	Register(ctx context.Context, prof user.Profile) (user.User, error)
}

// Machine drives the transitions that go through the identity provider.
type Machine struct {
	idp IdentityProvider
}

func NewMachine(idp IdentityProvider) *Machine {
	return &Machine{idp: idp}
}

// SignIn sets the session user and lands on the gateway.
// On error the state is returned unchanged.
func (m *Machine) SignIn(ctx context.Context, s State, creds user.Credentials) (State, error) {
	usr, err := m.idp.SignIn(ctx, creds)
	if err != nil {
		return s, err
	}
	return s.withUser(usr), nil
}

// Register behaves like SignIn once the profile is accepted.
func (m *Machine) Register(ctx context.Context, s State, prof user.Profile) (State, error) {
	usr, err := m.idp.Register(ctx, prof)
	if err != nil {
		return s, err
	}
	return s.withUser(usr), nil
}

// SignOut drops the session user and the history and returns to the landing view.
func (m *Machine) SignOut(s State) State {
	return s.signedOut()
}
