// Package dashboard assembles the gateway home view.
package dashboard

import (
	"context"
	"errors"

	errs "github.com/pkg/errors"

	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/user"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrTodoNotFound         = errors.New("to-do item not found")
)

type (
	Announcement struct {
		ID              int    `json:"id" yaml:"id"`
		Title           string `json:"title" yaml:"title"`
		Date            string `json:"date" yaml:"date"`
		Message         string `json:"message" yaml:"message"`
		FullDescription string `json:"full_description,omitempty" yaml:"full_description"`
	}

	Todo struct {
		ID        int    `json:"id" yaml:"id"`
		Task      string `json:"task" yaml:"task"`
		Deadline  string `json:"deadline" yaml:"deadline"`
		Completed bool   `json:"completed" yaml:"completed"`
		Priority  string `json:"priority" yaml:"priority"` // high | medium | low
	}

	Notification struct {
		ID              int    `json:"id" yaml:"id"`
		Type            string `json:"type" yaml:"type"`
		Message         string `json:"message" yaml:"message"`
		Time            string `json:"time" yaml:"time"`
		FullDescription string `json:"full_description,omitempty" yaml:"full_description"`
	}

	App struct {
		Label    string `json:"label" yaml:"label"`
		Featured bool   `json:"featured" yaml:"featured"`
	}

	Repository interface {
		QueryAnnouncements(ctx context.Context) ([]Announcement, error)
		QueryTodos(ctx context.Context) ([]Todo, error)
		QueryNotifications(ctx context.Context) ([]Notification, error)
		QueryApps(ctx context.Context) ([]App, error)
	}

	Profile struct {
		Name     string `json:"name"`
		Initials string `json:"initials"`
		Email    string `json:"email,omitempty"`
		Major    string `json:"major"`
	}

	Overview struct {
		Profile       Profile        `json:"profile"`
		Announcements []Announcement `json:"announcements"`
		Notifications []Notification `json:"notifications"`
		Todos         []Todo         `json:"todos"`
		PendingTodos  int            `json:"pending_todos"`
		Apps          []App          `json:"apps"` // featured
		MoreApps      []App          `json:"more_apps"`
	}

	Service struct {
		repo    Repository
		degrees degree.Repository
	}
)

func NewService(repo Repository, degrees degree.Repository) *Service {
	return &Service{repo: repo, degrees: degrees}
}

// NewProfile returns the header profile; without a signed in user it falls back to "Student Name".
func NewProfile(usr *user.User, major string) Profile {
	p := Profile{Name: degree.DefaultName, Initials: "SN", Major: major}
	if usr != nil && usr.FirstName != "" && usr.LastName != "" {
		p.Name = usr.FullName()
		p.Initials = string([]rune(usr.FirstName)[0]) + string([]rune(usr.LastName)[0])
	}
	if usr != nil {
		p.Email = usr.Email
	}
	return p
}

func isDismissed(dismissed []int, id int) bool {
	for _, d := range dismissed {
		if d == id {
			return true
		}
	}
	return false
}

// Overview returns the gateway content. To-do items in `dismissed` were checked off and are left out.
func (svc *Service) Overview(ctx context.Context, usr *user.User, dismissed []int) (Overview, error) {
	student, err := svc.degrees.GetStudent(ctx)
	if err != nil {
		return Overview{}, errs.Wrap(err, "getting student")
	}
	anns, err := svc.repo.QueryAnnouncements(ctx)
	if err != nil {
		return Overview{}, errs.Wrap(err, "querying announcements")
	}
	notifs, err := svc.repo.QueryNotifications(ctx)
	if err != nil {
		return Overview{}, errs.Wrap(err, "querying notifications")
	}
	todos, err := svc.repo.QueryTodos(ctx)
	if err != nil {
		return Overview{}, errs.Wrap(err, "querying to-do items")
	}
	apps, err := svc.repo.QueryApps(ctx)
	if err != nil {
		return Overview{}, errs.Wrap(err, "querying apps")
	}

	ov := Overview{
		Profile:       NewProfile(usr, student.Major),
		Announcements: anns,
		Notifications: notifs,
		Todos:         make([]Todo, 0, len(todos)),
		Apps:          []App{},
		MoreApps:      []App{},
	}
	for _, t := range todos {
		if isDismissed(dismissed, t.ID) {
			continue
		}
		ov.Todos = append(ov.Todos, t)
		if !t.Completed {
			ov.PendingTodos++
		}
	}
	for _, a := range apps {
		if a.Featured {
			ov.Apps = append(ov.Apps, a)
		} else {
			ov.MoreApps = append(ov.MoreApps, a)
		}
	}
	return ov, nil
}

func (svc *Service) Announcement(ctx context.Context, id int) (Announcement, error) {
	anns, err := svc.repo.QueryAnnouncements(ctx)
	if err != nil {
		return Announcement{}, errs.Wrap(err, "querying announcements")
	}
	for _, a := range anns {
		if a.ID == id {
			return a, nil
		}
	}
	return Announcement{}, ErrAnnouncementNotFound
}

// Dismiss returns `dismissed` with to-do item `id` added.
func (svc *Service) Dismiss(ctx context.Context, dismissed []int, id int) ([]int, error) {
	todos, err := svc.repo.QueryTodos(ctx)
	if err != nil {
		return dismissed, errs.Wrap(err, "querying to-do items")
	}
	for _, t := range todos {
		if t.ID != id {
			continue
		}
		if isDismissed(dismissed, id) {
			return dismissed, nil
		}
		return append(dismissed[:len(dismissed):len(dismissed)], id), nil
	}
	return dismissed, ErrTodoNotFound
}
