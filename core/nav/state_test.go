package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/user"
)

func TestParseView(t *testing.T) {
	for _, v := range Views {
		got, err := ParseView(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := ParseView(" Gateway ")
	require.NoError(t, err)
	assert.Equal(t, Gateway, got)

	for _, s := range []string{"", "home", "financial-aid"} {
		_, err := ParseView(s)
		assert.Equal(t, ErrUnknownView, err, s)
	}
}

func TestState_NavigateTo(t *testing.T) {
	s := Initial()
	assert.Equal(t, State{Current: Landing}, s)

	next := s.NavigateTo(SignIn)
	assert.Equal(t, State{Current: SignIn, Previous: Landing}, next)
	assert.Equal(t, Initial(), s, "transitions do not mutate the receiver")

	next = next.NavigateTo(SignIn)
	assert.Equal(t, State{Current: SignIn, Previous: SignIn}, next)
}

func TestState_NavigateBack(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  State
	}{
		{name: "no history", state: Initial(), want: Initial()},
		{name: "one level", state: State{Current: Payment, Previous: Schedule}, want: State{Current: Schedule}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.state.NavigateBack()
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, once.NavigateBack(), "a second back is a no-op")
		})
	}
}

func TestState_NavigateToThenBackRestores(t *testing.T) {
	for _, from := range Views {
		s := State{Current: from, Previous: Degree}
		got := s.NavigateTo(Payment).NavigateBack()
		assert.Equal(t, from, got.Current, "from %s", from)
	}
}

func TestState_Show(t *testing.T) {
	s := State{Current: Gateway, Previous: Degree}
	got := s.Show(Schedule)
	assert.Equal(t, State{Current: Schedule, Previous: Degree}, got)
}

func TestState_BackText(t *testing.T) {
	tests := []struct {
		previous View
		want     string
	}{
		{Gateway, "Back to Gateway"},
		{Schedule, "Back to Schedule"},
		{Degree, "Back to Degree Progress"},
		{ClassPlanner, "Back"},
		{"", "Back"},
	}
	for _, tt := range tests {
		t.Run(string(tt.previous), func(t *testing.T) {
			s := Initial().Show(tt.previous).NavigateTo(Payment)
			assert.Equal(t, tt.want, s.BackText())
		})
	}
}

type providerMock struct {
	usr user.User
	err error
}

func (p providerMock) SignIn(context.Context, user.Credentials) (user.User, error) {
	return p.usr, p.err
}
func (p providerMock) Register(context.Context, user.Profile) (user.User, error) { return p.usr, p.err }

func TestMachine(t *testing.T) {
	ctx := context.Background()
	jane := user.User{Email: "jane.doe@sfsu.edu", StudentID: "12345678", FirstName: "Jane", LastName: "Doe"}
	m := NewMachine(providerMock{usr: jane})

	s := Initial().NavigateTo(SignIn)
	s, err := m.SignIn(ctx, s, user.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, Gateway, s.Current)
	assert.Equal(t, Landing, s.Previous)
	assert.True(t, s.SignedIn())
	assert.Equal(t, jane, *s.User)

	s = s.NavigateTo(Degree)
	s = m.SignOut(s)
	assert.Equal(t, State{Current: Landing}, s)
	assert.False(t, s.SignedIn())

	s, err = m.Register(ctx, s.NavigateTo(Register), user.Profile{})
	require.NoError(t, err)
	assert.Equal(t, Gateway, s.Current)
	assert.True(t, s.SignedIn())
}

func TestMachine_Failure(t *testing.T) {
	ctx := context.Background()
	vErr := core.NewValidationError(errors.New("invalid"), core.FieldError{Field: "email", Error: "Email is required"})
	m := NewMachine(providerMock{err: vErr})

	before := Initial().NavigateTo(SignIn)
	after, err := m.SignIn(ctx, before, user.Credentials{})
	assert.Equal(t, vErr, err)
	assert.Equal(t, before, after)

	after, err = m.Register(ctx, before, user.Profile{})
	assert.Equal(t, vErr, err)
	assert.Equal(t, before, after)
}

func TestMachine_WithSimulatedProvider(t *testing.T) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator, []string{"@sfsu.edu", "@mail.sfsu.edu"})
	m := NewMachine(user.NewSimulatedProvider(validate, translator))

	s, err := m.SignIn(context.Background(), Initial(), user.Credentials{Email: "student@gmail.com", StudentID: "12AB5678", Password: "secret1"})
	vErr, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"email":      "Must be a valid SFSU email address",
		"student_id": "Student ID must be 8-9 digits",
	}, vErr.FieldMap())
	assert.Equal(t, Initial(), s)

	s, err = m.SignIn(context.Background(), Initial(), user.Credentials{Email: "ana.ruiz@mail.sfsu.edu", StudentID: "123456789", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", s.User.FullName())
}
