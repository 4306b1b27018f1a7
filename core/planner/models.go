// Package planner searches the course catalog and keeps the student's class plan.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrCourseFull     = errors.New("course is full")
	ErrAlreadyPlanned = errors.New("course is already in the plan")
	ErrNotPlanned     = errors.New("course is not in the plan")
)

// Unit thresholds of a term's course load.
const (
	FullTimeUnits = 12
	MaxUnits      = 18
)

// Load statuses
const (
	LoadPartTime = "part-time"
	LoadFullTime = "full-time"
	LoadOverload = "overload"
)

// Offering is a course section open for the next term.
type Offering struct {
	ID            string   `json:"id" yaml:"id"`
	Code          string   `json:"code" yaml:"code"`
	Title         string   `json:"title" yaml:"title"`
	Units         float64  `json:"units" yaml:"units"`
	Instructor    string   `json:"instructor" yaml:"instructor"`
	Days          []string `json:"days" yaml:"days"`
	Time          string   `json:"time" yaml:"time"` // e.g. "6:00 PM - 7:15 PM"
	Location      string   `json:"location" yaml:"location"`
	Seats         int      `json:"seats" yaml:"seats"`
	Enrolled      int      `json:"enrolled" yaml:"enrolled"`
	Prerequisites string   `json:"prerequisites,omitempty" yaml:"prerequisites"`
	Description   string   `json:"description" yaml:"description"`
}

type Catalog interface {
	QueryOfferings(ctx context.Context) ([]Offering, error)
	GetOffering(ctx context.Context, id string) (Offering, error)
}

func (o Offering) Remaining() int {
	if r := o.Seats - o.Enrolled; r > 0 {
		return r
	}
	return 0
}

func (o Offering) IsFull() bool { return o.Enrolled >= o.Seats }

// SeatsStatus is "Full", "N left" when 5 seats or less remain, or "N open".
func (o Offering) SeatsStatus() string {
	switch r := o.Remaining(); {
	case r == 0:
		return "Full"
	case r <= 5:
		return fmt.Sprintf("%d left", r)
	default:
		return fmt.Sprintf("%d open", r)
	}
}

// Matches reports whether `term` is found in the code, title or instructor (case-insensitive).
func (o Offering) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(o.Code), term) ||
		strings.Contains(strings.ToLower(o.Title), term) ||
		strings.Contains(strings.ToLower(o.Instructor), term)
}

const clockLayout = "3:04 PM"

// span parses the meeting time into minutes since midnight.
func (o Offering) span() (start, end int, ok bool) {
	parts := strings.SplitN(o.Time, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	s, err := time.Parse(clockLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	e, err := time.Parse(clockLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return s.Hour()*60 + s.Minute(), e.Hour()*60 + e.Minute(), true
}

// Overlaps reports whether both offerings meet on a common day at overlapping times.
func (o Offering) Overlaps(other Offering) bool {
	s1, e1, ok1 := o.span()
	s2, e2, ok2 := other.span()
	if !ok1 || !ok2 || s1 >= e2 || s2 >= e1 {
		return false
	}
	for _, d1 := range o.Days {
		for _, d2 := range other.Days {
			if strings.EqualFold(d1, d2) {
				return true
			}
		}
	}
	return false
}

type (
	// Listing is an offering as shown in search results.
	Listing struct {
		Offering
		Remaining   int    `json:"remaining"`
		SeatsStatus string `json:"seats_status"`
		Full        bool   `json:"full"`
	}

	Load struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	Conflict struct {
		First  string `json:"first"` // offering code
		Second string `json:"second"`
	}

	PlanSummary struct {
		Courses    []Listing  `json:"courses"`
		TotalUnits float64    `json:"total_units"`
		Load       Load       `json:"load"`
		Conflicts  []Conflict `json:"conflicts"`
	}
)

func NewListing(o Offering) Listing {
	return Listing{Offering: o, Remaining: o.Remaining(), SeatsStatus: o.SeatsStatus(), Full: o.IsFull()}
}

// LoadStatus classifies a term's units: part-time below 12, full-time up to 18, overload above.
func LoadStatus(units float64) Load {
	switch {
	case units < FullTimeUnits:
		return Load{Status: LoadPartTime, Message: fmt.Sprintf("Below full-time status (%d units minimum)", FullTimeUnits)}
	case units <= MaxUnits:
		return Load{Status: LoadFullTime, Message: "Full-time student status"}
	default:
		return Load{Status: LoadOverload, Message: fmt.Sprintf("Exceeds %d units (requires petition)", MaxUnits)}
	}
}
