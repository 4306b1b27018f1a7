package degree

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gateway/core/user"
)

type repoMock struct {
	student Student
	reqs    []RequirementCategory
	sems    []SemesterRecord
	err     error
}

func (r repoMock) GetStudent(context.Context) (Student, error) { return r.student, r.err }
func (r repoMock) QueryRequirements(context.Context) ([]RequirementCategory, error) {
	return r.reqs, nil
}
func (r repoMock) QuerySemesters(context.Context) ([]SemesterRecord, error) { return r.sems, nil }

func fptr(f float64) *float64 { return &f }

func newRepoMock() repoMock {
	return repoMock{
		student: Student{
			StudentID:            "A00123456",
			Major:                "Computer Science",
			Minor:                "Mathematics",
			TotalCreditsRequired: 120,
			CreditsCompleted:     84,
			CreditsInProgress:    15,
		},
		reqs: []RequirementCategory{
			{Name: "General Education", Required: 45, Completed: 45},
			{Name: "Major Requirements", Required: 51, Completed: 30, InProgress: 12},
			{
				Name: "Minor Requirements (Mathematics)", Required: 18, Completed: 9, InProgress: 3,
				Courses: []CourseRecord{
					{Code: "MATH 253", Credits: 3, Grade: "B+"},
					{Code: "MATH 301", Credits: 3, Grade: "A-"},
					{Code: "MATH 320", Credits: 3, Grade: GradeInProgress},
					{Code: "STAT 410", Credits: 3, Grade: "A"},
				},
			},
			{Name: "Electives", Required: 6},
		},
		sems: []SemesterRecord{
			{Term: "Fall 2024", Credits: 18, GPA: fptr(3.89), Courses: 5},
			{Term: "Spring 2025", Credits: 15, Courses: 5},
		},
	}
}

func TestService_Report(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	svc := NewService(newRepoMock())
	rep, err := svc.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultName, rep.Student.Name)
	assert.Equal(t, DefaultStudentID, rep.Student.StudentID)
	assert.Equal(t, 70.0, rep.ProgressPercent)
	assert.Equal(t, 99.0, rep.ProjectedCredits)
	assert.Equal(t, 82.5, rep.ProjectedPercent)
	assert.Equal(t, 21.0, rep.CreditsRemaining)
	assert.Equal(t, now, rep.GeneratedAt)

	require.Len(t, rep.Categories, 4)
	tests := []struct {
		name      string
		percent   float64
		complete  bool
		remaining float64
	}{
		{"General Education", 100, true, 0},
		{"Major Requirements", 59, false, 21},
		{"Minor Requirements (Mathematics)", 50, false, 9},
		{"Electives", 0, false, 6},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rep.Categories[i]
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.percent, c.Percent)
			assert.Equal(t, tt.complete, c.Complete)
			assert.Equal(t, tt.remaining, c.Remaining)
		})
	}
	assert.Equal(t, 3.67, rep.Categories[2].GPA, "(9.9 + 11.1 + 12) / 9")
	assert.Equal(t, 0.0, rep.Categories[3].GPA)

	assert.True(t, rep.Semesters[1].InProgress())
	assert.False(t, rep.Semesters[0].InProgress())

	minor, ok := rep.Category("Minor")
	require.True(t, ok)
	assert.Equal(t, 18.0, minor.Required)
	_, ok = rep.Category("Capstone")
	assert.False(t, ok)
}

func TestService_Report_Personalised(t *testing.T) {
	svc := NewService(newRepoMock())

	rep, err := svc.Report(context.Background(), &user.User{FirstName: "Jane", LastName: "Doe", StudentID: "912345678"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rep.Student.Name)
	assert.Equal(t, "912345678", rep.Student.StudentID)

	rep, err = svc.Report(context.Background(), &user.User{FirstName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, rep.Student.Name)
}

func TestService_Report_Error(t *testing.T) {
	repo := newRepoMock()
	repo.err = errors.New("boom")
	_, err := NewService(repo).Report(context.Background(), nil)
	assert.EqualError(t, err, "getting student: boom")
}

func TestBuildReport_NoRequiredCredits(t *testing.T) {
	rep := BuildReport(Student{CreditsCompleted: 10}, []RequirementCategory{{Name: "Empty"}}, nil)
	assert.Equal(t, 0.0, rep.ProgressPercent)
	assert.Equal(t, 0.0, rep.CreditsRemaining)
	assert.Equal(t, 0.0, rep.Categories[0].Percent)
	assert.True(t, rep.Categories[0].Complete)
}

func TestBuildReport_OverCompleted(t *testing.T) {
	rep := BuildReport(Student{CreditsCompleted: 118, CreditsInProgress: 9, TotalCreditsRequired: 120}, nil, nil)
	assert.Equal(t, 127.0, rep.ProjectedCredits)
	assert.Equal(t, 0.0, rep.CreditsRemaining, "remaining never goes negative")
	assert.Equal(t, 98.3, rep.ProgressPercent)
	assert.Equal(t, 105.8, rep.ProjectedPercent, "percentages are not capped")
}

func TestCourseRecord(t *testing.T) {
	assert.True(t, CourseRecord{Grade: "A-"}.Graded())
	assert.False(t, CourseRecord{Grade: GradePass}.Graded())
	assert.False(t, CourseRecord{Grade: GradeInProgress}.Graded())
	assert.True(t, CourseRecord{Grade: GradeInProgress}.InProgress())
}
