// Package schedule lays out the weekly class schedule with the account holds
// and the upcoming enrollment windows.
package schedule

import (
	"context"
	"errors"
	"strings"

	errs "github.com/pkg/errors"
)

var (
	ErrHoldNotFound       = errors.New("hold not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// Weekdays in display order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Meeting modes
const (
	ModeInPerson = "In Person"
	ModeOnline   = "Online"
)

type (
	// Meeting is a weekly class meeting. Online courses have no day and a "TBA" start.
	Meeting struct {
		Course     string `json:"course" yaml:"course"`
		Title      string `json:"title" yaml:"title"`
		Start      string `json:"start" yaml:"start"`
		End        string `json:"end,omitempty" yaml:"end"`
		Day        string `json:"day,omitempty" yaml:"day"`
		Location   string `json:"location" yaml:"location"`
		Mode       string `json:"mode" yaml:"mode"`
		Instructor string `json:"instructor" yaml:"instructor"`
	}

	Hold struct {
		ID              int    `json:"id" yaml:"id"`
		Type            string `json:"type" yaml:"type"`
		Title           string `json:"title" yaml:"title"`
		Description     string `json:"description" yaml:"description"`
		Severity        string `json:"severity" yaml:"severity"`
		FullDescription string `json:"full_description,omitempty" yaml:"full_description"`
	}

	Enrollment struct {
		ID               int    `json:"id" yaml:"id"`
		Term             string `json:"term" yaml:"term"`
		RegistrationDate string `json:"registration_date" yaml:"registration_date"`
		Status           string `json:"status" yaml:"status"` // upcoming | future
		Details          string `json:"details" yaml:"details"`
		FullDescription  string `json:"full_description,omitempty" yaml:"full_description"`
	}

	Repository interface {
		QueryMeetings(ctx context.Context) ([]Meeting, error)
		QueryHolds(ctx context.Context) ([]Hold, error)
		QueryEnrollments(ctx context.Context) ([]Enrollment, error)
	}

	Day struct {
		Day      string    `json:"day"`
		Meetings []Meeting `json:"meetings"`
	}

	Week struct {
		Days        []Day        `json:"days"`
		Unscheduled []Meeting    `json:"unscheduled"` // TBA / online
		Holds       []Hold       `json:"holds"`
		Enrollments []Enrollment `json:"enrollments"`
	}

	Service struct {
		repo Repository
	}
)

func (m Meeting) IsScheduled() bool {
	return m.Day != "" && !strings.EqualFold(m.Start, "TBA")
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Week groups the meetings by weekday, Monday first, keeping the repository order within a day.
// Days without meetings are left out.
func (svc *Service) Week(ctx context.Context) (Week, error) {
	meetings, err := svc.repo.QueryMeetings(ctx)
	if err != nil {
		return Week{}, errs.Wrap(err, "querying meetings")
	}
	holds, err := svc.repo.QueryHolds(ctx)
	if err != nil {
		return Week{}, errs.Wrap(err, "querying holds")
	}
	enrollments, err := svc.repo.QueryEnrollments(ctx)
	if err != nil {
		return Week{}, errs.Wrap(err, "querying enrollments")
	}

	byDay := make(map[string][]Meeting)
	week := Week{Days: []Day{}, Unscheduled: []Meeting{}, Holds: holds, Enrollments: enrollments}
	for _, m := range meetings {
		if !m.IsScheduled() {
			week.Unscheduled = append(week.Unscheduled, m)
			continue
		}
		byDay[strings.ToLower(m.Day)] = append(byDay[strings.ToLower(m.Day)], m)
	}
	for _, d := range Weekdays {
		if ms := byDay[strings.ToLower(d)]; len(ms) > 0 {
			week.Days = append(week.Days, Day{Day: d, Meetings: ms})
		}
	}
	return week, nil
}

func (svc *Service) Hold(ctx context.Context, id int) (Hold, error) {
	holds, err := svc.repo.QueryHolds(ctx)
	if err != nil {
		return Hold{}, errs.Wrap(err, "querying holds")
	}
	for _, h := range holds {
		if h.ID == id {
			return h, nil
		}
	}
	return Hold{}, ErrHoldNotFound
}

func (svc *Service) Enrollment(ctx context.Context, id int) (Enrollment, error) {
	enrollments, err := svc.repo.QueryEnrollments(ctx)
	if err != nil {
		return Enrollment{}, errs.Wrap(err, "querying enrollments")
	}
	for _, e := range enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return Enrollment{}, ErrEnrollmentNotFound
}
