package grade

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrCourseNotFound = errors.New("course not found")

// Calculator is a GPA calculator session: the courses entered so far and an optional prior record.
// It holds plain data so it can live inside a stored session.
type Calculator struct {
	Courses []CourseEntry `json:"courses"`
	Prior   *PriorRecord  `json:"prior,omitempty"`
}

// Add appends an already validated entry under a new ID.
func (c *Calculator) Add(entry CourseEntry) (CourseEntry, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return CourseEntry{}, err
	}
	entry.ID = id
	c.Courses = append(c.Courses, entry)
	return entry, nil
}

// Remove drops the course with the given ID.
func (c *Calculator) Remove(id string) error {
	for i, course := range c.Courses {
		if course.ID == id {
			c.Courses = append(c.Courses[:i:i], c.Courses[i+1:]...)
			return nil
		}
	}
	return ErrCourseNotFound
}

// Clear drops every course; the prior record is kept.
func (c *Calculator) Clear() {
	c.Courses = nil
}

// SetPrior sets (or with nil, clears) the prior record.
func (c *Calculator) SetPrior(prior *PriorRecord) {
	c.Prior = prior
}

func (c Calculator) Summary() Summary {
	return Summarize(c.Courses, c.Prior)
}
