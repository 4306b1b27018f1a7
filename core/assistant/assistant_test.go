package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/user"
)

func testReport() degree.Report {
	student := degree.Student{
		Name:                 "Jane Doe",
		Major:                "Computer Science",
		Minor:                "Mathematics",
		ExpectedGraduation:   "May 2026",
		CurrentYear:          "Junior",
		OverallGPA:           3.67,
		MajorGPA:             3.82,
		TotalCreditsRequired: 120,
		CreditsCompleted:     84,
		CreditsInProgress:    15,
	}
	reqs := []degree.RequirementCategory{
		{Name: "General Education", Required: 45, Completed: 45},
		{Name: "Major Requirements", Required: 51, Completed: 30, InProgress: 12},
		{Name: "Minor Requirements (Mathematics)", Required: 18, Completed: 9, InProgress: 3},
		{Name: "Electives", Required: 6},
	}
	return degree.BuildReport(student, reqs, nil)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"How's my GPA?", "gpa"},
		{"What's my GPA in my major?", "gpa"},
		{"How close am I to graduation?", "progress"},
		{"What requirements do I still need?", "requirements"},
		{"When will I graduate?", "graduation"},
		{"Tell me about my minor", "major"},
		{"How many credits per semester?", "course_load"},
		{"Am I done with gen ed?", "general_education"},
		{"What should I do next?", "advice"},
		{"Which electives are available?", "electives"},
		{"hello", "fallback"},
		{"", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.question).Name)
		})
	}
}

func TestRespond(t *testing.T) {
	facts := NewFacts(testReport())
	assert.Equal(t, 21.0, facts.CreditsRemaining)
	assert.InDelta(t, 70.0, facts.ProgressPercent, 1e-9)

	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "gpa",
			question: "How's my GPA?",
			want:     []string{"Your current overall GPA is 3.67, which is excellent! Your major GPA in Computer Science is 3.82."},
		},
		{
			name:     "improve gpa",
			question: "How can I improve my grades?",
			want: []string{
				"Your current overall GPA is 3.67, and your major GPA is 3.82. To improve your GPA, focus on:",
				"Keep up the excellent work in your Computer Science courses.",
			},
		},
		{
			name:     "progress",
			question: "How close am I to graduation?",
			want: []string{
				"• Total Credits: 84 of 120 completed (70.0%)",
				"• Credits in Progress: 15",
				"• Credits Remaining: 21",
				"You're currently a Junior with an expected graduation in May 2026.",
			},
		},
		{
			name:     "graduation on track",
			question: "Will I finish on time?",
			want: []string{
				"You're expected to graduate in May 2026. With 21 credits remaining after your current courses, you are on track.",
				"At a normal course load of 15 credits per semester",
			},
		},
		{
			name:     "major and minor",
			question: "Tell me about my minor",
			want: []string{
				"You're majoring in Computer Science with a minor in Mathematics.\n\n",
				"Major Progress: 30 of 51 credits completed (58.8%)\nYou have 9 major credits remaining.\n",
				"Minor Progress: 9 of 18 credits completed\nYou have 6 minor credits remaining.",
			},
		},
		{
			name:     "course load",
			question: "How many credits per semester?",
			want: []string{
				"You currently have 15 credits in progress this semester.",
				"Take about 11 credits per semester",
				"Take about 7 credits per semester",
			},
		},
		{
			name:     "general education complete",
			question: "Am I done with gen ed?",
			want:     []string{"You've completed all 45 credits of General Education requirements."},
		},
		{
			name:     "advice",
			question: "What should I do next?",
			want:     []string{"(3.67 GPA)", "internships in Computer Science", "Plan your remaining 21 credits"},
		},
		{
			name:     "electives",
			question: "Which electives are available?",
			want:     []string{"You need 6 elective credits."},
		},
		{
			name:     "fallback",
			question: "hello",
			want:     []string{"I'd be happy to help you with that!", "\"What should I focus on?\""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Respond(facts, tt.question)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestRespond_Requirements(t *testing.T) {
	facts := NewFacts(testReport())
	want := "Here's what you still need to complete:\n\n" +
		"• Major Requirements: 9 credits remaining\n" +
		"• Minor Requirements (Mathematics): 6 credits remaining\n" +
		"• Electives: 6 credits remaining\n" +
		"\nYou're making excellent progress toward your Computer Science degree!"
	assert.Equal(t, want, Respond(facts, "What requirements do I still need?"))

	for i := range facts.Requirements {
		facts.Requirements[i].Completed = facts.Requirements[i].Required
	}
	assert.Equal(t,
		"Great news! You've completed all your major requirement categories. You just need 21 more elective credits to reach the 120 total credits required for graduation.",
		Respond(facts, "any requirement left?"),
	)
}

func TestRespond_OffTrack(t *testing.T) {
	facts := NewFacts(testReport())
	facts.CreditsRemaining = 36
	got := Respond(facts, "When do I graduate?")
	assert.Contains(t, got, "you may need to adjust your plan to stay on track.")
	assert.Contains(t, got, "Consider meeting with your academic advisor")
}

func TestRespond_MissingCategories(t *testing.T) {
	facts := NewFacts(testReport())
	facts.Requirements = nil
	assert.Equal(t,
		"I don't see General Education requirements in your data. This might be completed or organized differently in your program.",
		Respond(facts, "gen ed?"),
	)
	assert.Equal(t, "Elective information isn't currently available in your degree plan.", Respond(facts, "electives"))
	assert.Equal(t, "You're majoring in Computer Science with a minor in Mathematics.\n\n", Respond(facts, "major"))
}

func TestNewConversation(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	conv := NewConversation(now)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, Message{ID: "welcome", Role: RoleAssistant, Content: WelcomeText, Timestamp: now}, conv.Messages[0])

	msg, err := NewMessage(RoleUser, "hi", now)
	require.NoError(t, err)
	assert.Len(t, msg.ID, 21)
	conv.Append(msg)
	last, ok := conv.Last()
	assert.True(t, ok)
	assert.Equal(t, msg, last)
}

type reportsMock struct {
	err error
}

func (m reportsMock) Report(context.Context, *user.User) (degree.Report, error) {
	return testReport(), m.err
}

func TestAssistant_Ask(t *testing.T) {
	ctx := context.Background()
	asst := New(reportsMock{}, 10*time.Millisecond)

	_, err := asst.Ask(ctx, "s1", nil, "   ")
	assert.Equal(t, ErrEmptyQuestion, err)

	task, err := asst.Ask(ctx, "s1", nil, "How's my GPA?")
	require.NoError(t, err)
	assert.True(t, asst.Typing("s1"))

	_, err = asst.Ask(ctx, "s1", nil, "And my progress?")
	assert.Equal(t, ErrReplyPending, err)

	msg, err := task.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.NotEmpty(t, msg.ID)
	assert.Contains(t, msg.Content, "Your current overall GPA is 3.67")
	assert.False(t, asst.Typing("s1"))

	_, err = asst.Ask(ctx, "s1", nil, "And my progress?")
	assert.NoError(t, err)
}

func TestAssistant_AskReportError(t *testing.T) {
	asst := New(reportsMock{err: errors.New("boom")}, 0)
	_, err := asst.Ask(context.Background(), "s1", nil, "gpa")
	assert.Error(t, err)
	assert.False(t, asst.Typing("s1"))
}
