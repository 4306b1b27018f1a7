// Package nav holds the portal's navigation state machine.
//
// A State is a plain value: every transition returns the next State and never
// mutates the receiver, so a session can store it as-is.
package nav

import (
	"errors"
	"strings"

	"github.com/trezcool/gateway/core/user"
)

var ErrUnknownView = errors.New("unknown view")

type View string

// Views
const (
	Landing      View = "landing"
	SignIn       View = "signin"
	Register     View = "register"
	Gateway      View = "gateway"
	Schedule     View = "schedule"
	Degree       View = "degree"
	Payment      View = "payment"
	FinancialAid View = "financialaid"
	ClassPlanner View = "classplanner"
)

var Views = []View{Landing, SignIn, Register, Gateway, Schedule, Degree, Payment, FinancialAid, ClassPlanner}

// ParseView returns the View named `s` (case-insensitive).
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", ErrUnknownView
	}
	return v, nil
}

func (v View) IsValid() bool {
	for _, view := range Views {
		if v == view {
			return true
		}
	}
	return false
}

// State is the navigation state of one session.
// An empty Previous means there is nothing to go back to.
type State struct {
	Current  View       `json:"current"`
	Previous View       `json:"previous,omitempty"`
	User     *user.User `json:"user,omitempty"`
}

// Initial returns the state a new session starts in.
func Initial() State {
	return State{Current: Landing}
}

// NavigateTo remembers the current view and switches to `v`. Any view is reachable from any other.
func (s State) NavigateTo(v View) State {
	s.Previous = s.Current
	s.Current = v
	return s
}

// NavigateBack returns to the previous view and forgets it: there is a single level of history.
// Without a previous view it is a no-op.
func (s State) NavigateBack() State {
	if s.Previous == "" {
		return s
	}
	s.Current = s.Previous
	s.Previous = ""
	return s
}

// Show switches the current view without touching the history, as the header links do.
func (s State) Show(v View) State {
	s.Current = v
	return s
}

// BackText is the label of the back control, named after the view it returns to.
func (s State) BackText() string {
	switch s.Previous {
	case Gateway:
		return "Back to Gateway"
	case Schedule:
		return "Back to Schedule"
	case Degree:
		return "Back to Degree Progress"
	default:
		return "Back"
	}
}

func (s State) SignedIn() bool {
	return !s.User.IsZero()
}

func (s State) withUser(usr user.User) State {
	s.User = &usr
	s.Current = Gateway
	return s
}

func (s State) signedOut() State {
	return State{Current: Landing}
}
