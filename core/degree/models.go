// Package degree builds the degree progress report from the student's record.
package degree

import (
	"context"

	"github.com/trezcool/gateway/core/grade"
)

// Grades that are not on the grade scale.
const (
	GradeInProgress = "In Progress"
	GradePass       = "P"
)

// Fallbacks when no user is signed in.
const (
	DefaultName      = "Student Name"
	DefaultStudentID = "A00123456"
)

type (
	Student struct {
		Name                 string  `json:"name" yaml:"name"`
		StudentID            string  `json:"student_id" yaml:"student_id"`
		Major                string  `json:"major" yaml:"major"`
		Minor                string  `json:"minor" yaml:"minor"`
		ExpectedGraduation   string  `json:"expected_graduation" yaml:"expected_graduation"`
		CurrentYear          string  `json:"current_year" yaml:"current_year"`
		OverallGPA           float64 `json:"overall_gpa" yaml:"overall_gpa"`
		MajorGPA             float64 `json:"major_gpa" yaml:"major_gpa"`
		TotalCreditsRequired float64 `json:"total_credits_required" yaml:"total_credits_required"`
		CreditsCompleted     float64 `json:"credits_completed" yaml:"credits_completed"`
		CreditsInProgress    float64 `json:"credits_in_progress" yaml:"credits_in_progress"`
	}

	CourseRecord struct {
		Code     string  `json:"code" yaml:"code"`
		Name     string  `json:"name" yaml:"name"`
		Credits  float64 `json:"credits" yaml:"credits"`
		Grade    string  `json:"grade" yaml:"grade"`
		Semester string  `json:"semester" yaml:"semester"`
	}

	// RequirementCategory is a bucket of the degree program with its own credit target.
	// Completed may exceed Required.
	RequirementCategory struct {
		Name       string         `json:"name" yaml:"name"`
		Required   float64        `json:"required" yaml:"required"`
		Completed  float64        `json:"completed" yaml:"completed"`
		InProgress float64        `json:"in_progress" yaml:"in_progress"`
		Courses    []CourseRecord `json:"courses" yaml:"courses"`
	}

	// SemesterRecord is one term of the history; a nil GPA means the term is in progress.
	SemesterRecord struct {
		Term    string   `json:"term" yaml:"term"`
		Credits float64  `json:"credits" yaml:"credits"`
		GPA     *float64 `json:"gpa" yaml:"gpa"`
		Courses int      `json:"courses" yaml:"courses"`
	}

	Repository interface {
		GetStudent(ctx context.Context) (Student, error)
		QueryRequirements(ctx context.Context) ([]RequirementCategory, error)
		QuerySemesters(ctx context.Context) ([]SemesterRecord, error)
	}
)

func (c CourseRecord) InProgress() bool { return c.Grade == GradeInProgress }

// Graded reports whether the course carries grade points.
func (c CourseRecord) Graded() bool { return grade.IsValid(grade.Grade(c.Grade)) }

func (s SemesterRecord) InProgress() bool { return s.GPA == nil }
