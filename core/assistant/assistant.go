// Package assistant answers degree progress questions from the student's report.
package assistant

import (
	"context"
	"errors"
	"time"

	errs "github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/deferred"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/user"
)

var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrReplyPending  = errors.New("the assistant is still typing")

	NowFunc = time.Now // mockable
)

// ReportSource provides the degree report the answers are computed from.
type ReportSource interface {
	Report(ctx context.Context, usr *user.User) (degree.Report, error)
}

type Assistant struct {
	reports ReportSource
	delay   time.Duration
	guard   *deferred.Guard
}

func New(reports ReportSource, delay time.Duration) *Assistant {
	return &Assistant{reports: reports, delay: delay, guard: deferred.NewGuard()}
}

// Ask starts answering `question` for the session. The reply is ready after the configured delay;
// until then the session cannot ask again.
func (a *Assistant) Ask(ctx context.Context, sessionID string, usr *user.User, question string) (*deferred.Task[Message], error) {
	question = core.CleanString(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if err := a.guard.Acquire(sessionID); err != nil {
		return nil, ErrReplyPending
	}

	rep, err := a.reports.Report(ctx, usr)
	if err != nil {
		a.guard.Release(sessionID)
		return nil, errs.Wrap(err, "getting degree report")
	}
	facts := NewFacts(rep)

	return deferred.After(a.delay, func() Message {
		defer a.guard.Release(sessionID)
		content := Respond(facts, question)
		msg, err := NewMessage(RoleAssistant, content, NowFunc())
		if err != nil {
			msg = Message{ID: sessionID + "-" + NowFunc().Format("150405.000"), Role: RoleAssistant, Content: content, Timestamp: NowFunc().UTC()}
		}
		return msg
	}), nil
}

// Typing reports whether a reply for the session is pending.
func (a *Assistant) Typing(sessionID string) bool {
	return a.guard.Busy(sessionID)
}
