package assistant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/trezcool/gateway/core/degree"
)

// onTrackCredits is what a student can still finish in a semester and a half at a normal load.
const onTrackCredits = 21

// Rule answers the questions it matches. Rules are tried in order and the first match wins.
// Both funcs get the lowered question.
type Rule struct {
	Name    string
	Match   func(q string) bool
	Respond func(f Facts, q string) string
}

// Facts are the figures the rules talk about.
type Facts struct {
	Student          degree.Student
	Requirements     []degree.RequirementCategory
	ProgressPercent  float64
	CreditsRemaining float64 // after the courses in progress; may be negative
}

func NewFacts(rep degree.Report) Facts {
	s := rep.Student
	f := Facts{
		Student:          s,
		Requirements:     make([]degree.RequirementCategory, 0, len(rep.Categories)),
		CreditsRemaining: s.TotalCreditsRequired - s.CreditsCompleted - s.CreditsInProgress,
	}
	if s.TotalCreditsRequired > 0 {
		f.ProgressPercent = s.CreditsCompleted / s.TotalCreditsRequired * 100
	}
	for _, c := range rep.Categories {
		f.Requirements = append(f.Requirements, c.RequirementCategory)
	}
	return f
}

func (f Facts) requirement(match func(name string) bool) (degree.RequirementCategory, bool) {
	for _, r := range f.Requirements {
		if match(r.Name) {
			return r, true
		}
	}
	return degree.RequirementCategory{}, false
}

func named(name string) func(string) bool {
	return func(s string) bool { return s == name }
}

func remaining(r degree.RequirementCategory) float64 {
	return r.Required - r.Completed - r.InProgress
}

func containsAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

// num formats like a plain number: no trailing zeros.
func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Rules is the ordered rule list; the last rule matches everything.
var Rules = []Rule{
	{Name: "gpa", Match: containsAny("gpa", "grade"), Respond: respondGPA},
	{Name: "progress", Match: containsAny("progress", "how far", "close"), Respond: respondProgress},
	{Name: "requirements", Match: containsAny("requirement", "need to take", "still need"), Respond: respondRequirements},
	{Name: "graduation", Match: containsAny("graduate", "graduation", "finish"), Respond: respondGraduation},
	{Name: "major", Match: containsAny("major", "minor"), Respond: respondMajor},
	{Name: "course_load", Match: containsAny("course load", "how many", "credits per"), Respond: respondCourseLoad},
	{Name: "general_education", Match: containsAny("general ed", "gen ed", "ge "), Respond: respondGeneralEducation},
	{Name: "advice", Match: containsAny("advice", "recommend", "should i"), Respond: respondAdvice},
	{Name: "electives", Match: containsAny("elective"), Respond: respondElectives},
	{Name: "fallback", Match: func(string) bool { return true }, Respond: respondFallback},
}

// Match returns the first rule matching `question`.
func Match(question string) Rule {
	q := strings.ToLower(question)
	for _, r := range Rules {
		if r.Match(q) {
			return r
		}
	}
	return Rules[len(Rules)-1]
}

// Respond answers `question` with the first matching rule.
func Respond(f Facts, question string) string {
	return Match(question).Respond(f, strings.ToLower(question))
}

func respondGPA(f Facts, q string) string {
	s := f.Student
	if containsAny("improve", "raise", "increase")(q) {
		return fmt.Sprintf("Your current overall GPA is %s, and your major GPA is %s. To improve your GPA, focus on:\n\n"+
			"1. Completing all assignments and studying consistently\n"+
			"2. Attending office hours for challenging courses\n"+
			"3. Forming study groups with classmates\n"+
			"4. Taking advantage of tutoring resources\n\n"+
			"Your major GPA of %s is strong! Keep up the excellent work in your %s courses.",
			num(s.OverallGPA), num(s.MajorGPA), num(s.MajorGPA), s.Major)
	}
	return fmt.Sprintf("Your current overall GPA is %s, which is excellent! Your major GPA in %s is %s. "+
		"You're performing very well academically. Is there anything specific about your GPA you'd like to know?",
		num(s.OverallGPA), s.Major, num(s.MajorGPA))
}

func respondProgress(f Facts, _ string) string {
	s := f.Student
	return fmt.Sprintf("You've made great progress! Here's your current status:\n\n"+
		"• Total Credits: %s of %s completed (%.1f%%)\n"+
		"• Credits in Progress: %s\n"+
		"• Credits Remaining: %s\n\n"+
		"You're currently a %s with an expected graduation in %s. You're on track!",
		num(s.CreditsCompleted), num(s.TotalCreditsRequired), f.ProgressPercent,
		num(s.CreditsInProgress), num(f.CreditsRemaining), s.CurrentYear, s.ExpectedGraduation)
}

func respondRequirements(f Facts, _ string) string {
	var b strings.Builder
	for _, r := range f.Requirements {
		if r.Completed >= r.Required {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("Here's what you still need to complete:\n\n")
		}
		fmt.Fprintf(&b, "• %s: %s credits remaining\n", r.Name, num(remaining(r)))
	}
	if b.Len() == 0 {
		return fmt.Sprintf("Great news! You've completed all your major requirement categories. "+
			"You just need %s more elective credits to reach the %s total credits required for graduation.",
			num(f.CreditsRemaining), num(f.Student.TotalCreditsRequired))
	}
	fmt.Fprintf(&b, "\nYou're making excellent progress toward your %s degree!", f.Student.Major)
	return b.String()
}

func respondGraduation(f Facts, _ string) string {
	verdict := "may need to adjust your plan to stay"
	advice := "Consider meeting with your academic advisor to plan your remaining semesters."
	if f.CreditsRemaining <= onTrackCredits {
		verdict = "are"
		advice = "At a normal course load of 15 credits per semester, you should be able to complete your degree on time!"
	}
	return fmt.Sprintf("You're expected to graduate in %s. With %s credits remaining after your current courses, you %s on track.\n\n%s",
		f.Student.ExpectedGraduation, num(f.CreditsRemaining), verdict, advice)
}

func respondMajor(f Facts, _ string) string {
	s := f.Student
	var b strings.Builder
	b.WriteString("You're majoring in " + s.Major)
	if s.Minor != "" {
		b.WriteString(" with a minor in " + s.Minor)
	}
	b.WriteString(".\n\n")

	if major, ok := f.requirement(named("Major Requirements")); ok {
		pct := 0.0
		if major.Required > 0 {
			pct = major.Completed / major.Required * 100
		}
		fmt.Fprintf(&b, "Major Progress: %s of %s credits completed (%.1f%%)\n", num(major.Completed), num(major.Required), pct)
		if rem := remaining(major); rem > 0 {
			fmt.Fprintf(&b, "You have %s major credits remaining.\n", num(rem))
		}
	}
	minor, ok := f.requirement(func(name string) bool { return strings.Contains(name, "Minor") })
	if ok {
		fmt.Fprintf(&b, "\nMinor Progress: %s of %s credits completed\n", num(minor.Completed), num(minor.Required))
		if rem := remaining(minor); rem > 0 {
			fmt.Fprintf(&b, "You have %s minor credits remaining.", num(rem))
		}
	}
	return b.String()
}

func respondCourseLoad(f Facts, _ string) string {
	return fmt.Sprintf("You currently have %s credits in progress this semester. "+
		"With %s credits remaining after this semester, I'd recommend:\n\n"+
		"• If graduating in 2 semesters: Take about %s credits per semester\n"+
		"• If graduating in 3 semesters: Take about %s credits per semester\n\n"+
		"A typical full-time load is 12-15 credits. Plan with your advisor to find the right balance!",
		num(f.Student.CreditsInProgress), num(f.CreditsRemaining),
		num(math.Ceil(f.CreditsRemaining/2)), num(math.Ceil(f.CreditsRemaining/3)))
}

func respondGeneralEducation(f Facts, _ string) string {
	ge, ok := f.requirement(named("General Education"))
	if !ok {
		return "I don't see General Education requirements in your data. This might be completed or organized differently in your program."
	}
	if ge.Completed >= ge.Required {
		return fmt.Sprintf("Excellent news! You've completed all %s credits of General Education requirements. "+
			"You can now focus entirely on your major, minor, and elective courses.", num(ge.Required))
	}
	return fmt.Sprintf("You've completed %s of %s General Education credits, with %s in progress. You have %s GE credits remaining.",
		num(ge.Completed), num(ge.Required), num(ge.InProgress), num(remaining(ge)))
}

func respondAdvice(f Facts, _ string) string {
	s := f.Student
	return fmt.Sprintf("Based on your excellent academic performance (%s GPA), here's my advice:\n\n"+
		"1. Keep maintaining your strong grades - you're doing great!\n"+
		"2. Consider taking on research opportunities or internships in %s\n"+
		"3. Build relationships with professors for strong recommendation letters\n"+
		"4. Plan your remaining %s credits strategically to explore interests\n"+
		"5. Stay connected with your academic advisor for personalized guidance\n\n"+
		"You're on an excellent path toward graduation in %s!",
		num(s.OverallGPA), s.Major, num(f.CreditsRemaining), s.ExpectedGraduation)
}

func respondElectives(f Facts, _ string) string {
	electives, ok := f.requirement(named("Electives"))
	if !ok {
		return "Elective information isn't currently available in your degree plan."
	}
	if rem := remaining(electives); rem > 0 {
		return fmt.Sprintf("You need %s elective credits. This is a great opportunity to:\n\n"+
			"• Explore subjects you're curious about\n"+
			"• Take courses that complement your major\n"+
			"• Develop additional skills for your career\n"+
			"• Fulfill a personal academic interest\n\n"+
			"Choose electives that excite you and align with your goals!", num(rem))
	}
	return "You've completed your elective requirements! Great job exploring diverse subjects."
}

func respondFallback(Facts, string) string {
	return "I'd be happy to help you with that! I can provide information about:\n\n" +
		"• Your overall progress and GPA\n" +
		"• Specific requirement categories\n" +
		"• Graduation timeline and planning\n" +
		"• Course recommendations\n" +
		"• Academic advice\n\n" +
		"Could you be more specific about what you'd like to know? For example, you could ask:\n" +
		"- \"How close am I to graduation?\"\n" +
		"- \"What requirements do I still need?\"\n" +
		"- \"How's my GPA?\"\n" +
		"- \"What should I focus on?\""
}
