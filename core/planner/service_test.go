package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogMock []Offering

func (c catalogMock) QueryOfferings(context.Context) ([]Offering, error) { return c, nil }

func (c catalogMock) GetOffering(_ context.Context, id string) (Offering, error) {
	for _, o := range c {
		if o.ID == id {
			return o, nil
		}
	}
	return Offering{}, ErrNotFound
}

var catalog = catalogMock{
	{ID: "1", Code: "CSC 600", Title: "Advanced Topics in Computer Science", Units: 3, Instructor: "Dr. Emily Rodriguez",
		Days: []string{"Mon", "Wed"}, Time: "6:00 PM - 7:15 PM", Seats: 30, Enrolled: 18},
	{ID: "2", Code: "CSC 648", Title: "Software Engineering", Units: 3, Instructor: "Prof. Michael Chang",
		Days: []string{"Tue", "Thu"}, Time: "4:00 PM - 5:15 PM", Seats: 35, Enrolled: 31},
	{ID: "3", Code: "CSC 665", Title: "Artificial Intelligence", Units: 3, Instructor: "Dr. Sarah Johnson",
		Days: []string{"Mon", "Wed"}, Time: "7:30 PM - 8:45 PM", Seats: 25, Enrolled: 25},
	{ID: "5", Code: "CSC 690", Title: "Graduate Seminar", Units: 1, Instructor: "Various Faculty",
		Days: []string{"Fri"}, Time: "2:00 PM - 3:50 PM", Seats: 50, Enrolled: 12},
	{ID: "8", Code: "CSC 680", Title: "Mobile Application Development", Units: 3, Instructor: "Dr. Robert Lee",
		Days: []string{"Wed"}, Time: "6:00 PM - 8:45 PM", Seats: 28, Enrolled: 24},
}

func codes(listings []Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Code)
	}
	return out
}

func TestOffering_SeatsStatus(t *testing.T) {
	tests := []struct {
		seats, enrolled int
		want            string
	}{
		{25, 25, "Full"},
		{25, 26, "Full"},
		{35, 31, "4 left"},
		{30, 25, "5 left"},
		{30, 18, "12 open"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Offering{Seats: tt.seats, Enrolled: tt.enrolled}.SeatsStatus())
		})
	}
}

func TestService_Search(t *testing.T) {
	svc := NewService(catalog)
	ctx := context.Background()

	tests := []struct {
		name string
		term string
		plan []string
		want []string
	}{
		{name: "everything", term: "", want: []string{"CSC 600", "CSC 648", "CSC 665", "CSC 690", "CSC 680"}},
		{name: "by code", term: "csc 6", plan: []string{"1", "2"}, want: []string{"CSC 665", "CSC 690", "CSC 680"}},
		{name: "by title", term: "INTELLIGENCE", want: []string{"CSC 665"}},
		{name: "by instructor", term: "chang", want: []string{"CSC 648"}},
		{name: "planned courses are hidden", term: "chang", plan: []string{"2"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term, tt.plan)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(got))
		})
	}
}

func TestService_AddRemove(t *testing.T) {
	svc := NewService(catalog)
	ctx := context.Background()

	plan, err := svc.Add(ctx, nil, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, plan)

	_, err = svc.Add(ctx, plan, "1")
	assert.Equal(t, ErrAlreadyPlanned, err)
	_, err = svc.Add(ctx, plan, "3")
	assert.Equal(t, ErrCourseFull, err)
	_, err = svc.Add(ctx, plan, "42")
	assert.Equal(t, ErrNotFound, err)

	plan, err = svc.Add(ctx, plan, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, plan)

	plan, err = Remove(plan, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, plan)
	_, err = Remove(plan, "1")
	assert.Equal(t, ErrNotPlanned, err)
}

func TestService_Summary(t *testing.T) {
	svc := NewService(catalog)
	ctx := context.Background()

	sum, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.TotalUnits)
	assert.Equal(t, LoadPartTime, sum.Load.Status)
	assert.Empty(t, sum.Conflicts)

	sum, err = svc.Summary(ctx, []string{"1", "2", "5", "8", "gone"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CSC 600", "CSC 648", "CSC 690", "CSC 680"}, codes(sum.Courses))
	assert.Equal(t, 10.0, sum.TotalUnits)
	assert.Equal(t, Load{Status: LoadPartTime, Message: "Below full-time status (12 units minimum)"}, sum.Load)
	assert.Equal(t, []Conflict{{First: "CSC 600", Second: "CSC 680"}}, sum.Conflicts)
}

func TestLoadStatus(t *testing.T) {
	tests := []struct {
		units float64
		want  string
	}{
		{0, LoadPartTime},
		{11, LoadPartTime},
		{12, LoadFullTime},
		{18, LoadFullTime},
		{19, LoadOverload},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LoadStatus(tt.units).Status, "%v units", tt.units)
	}
	assert.Equal(t, "Exceeds 18 units (requires petition)", LoadStatus(21).Message)
}

func TestOffering_Overlaps(t *testing.T) {
	a := Offering{Days: []string{"Mon", "Wed"}, Time: "6:00 PM - 7:15 PM"}
	assert.True(t, a.Overlaps(Offering{Days: []string{"wed"}, Time: "7:00 PM - 8:00 PM"}))
	assert.False(t, a.Overlaps(Offering{Days: []string{"Mon"}, Time: "7:15 PM - 8:00 PM"}), "back to back")
	assert.False(t, a.Overlaps(Offering{Days: []string{"Tue"}, Time: "6:00 PM - 7:15 PM"}))
	assert.False(t, a.Overlaps(Offering{Days: []string{"Mon"}, Time: "TBA"}))
}
