package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/assistant"
	"github.com/trezcool/gateway/core/deferred"
	"github.com/trezcool/gateway/core/session"
)

type (
	assistantApi struct {
		store  session.Store
		svc    *assistant.Assistant
		logger core.Logger
	}

	ConversationResponse struct {
		Messages []assistant.Message `json:"messages"`
		Typing   bool                `json:"typing"`
	}

	QuestionRequest struct {
		Content string `json:"content"`
	}

	AnswerResponse struct {
		Question assistant.Message `json:"question"`
		Answer   assistant.Message `json:"answer"`
	}
)

func registerAssistantAPI(
	g *echo.Group,
	jwt, sess echo.MiddlewareFunc,
	store session.Store,
	svc *assistant.Assistant,
	logger core.Logger,
) {
	api := assistantApi{store: store, svc: svc, logger: logger}

	ag := g.Group("/assistant", jwt, sess)
	ag.GET("/messages", api.conversation)
	ag.POST("/messages", api.ask)
}

func (api *assistantApi) appendMessage(ctx context.Context, sessionID string, msg assistant.Message) (session.Session, error) {
	return api.store.Update(ctx, sessionID, func(s *session.Session) error {
		s.Conversation.Append(msg)
		return nil
	})
}

// keepLateAnswer stores the answer of a request that gave up waiting.
func (api *assistantApi) keepLateAnswer(sessionID string, task *deferred.Task[assistant.Message]) {
	ctx := context.Background()
	answer, err := task.Wait(ctx)
	if err == nil {
		_, err = api.appendMessage(ctx, sessionID, answer)
	}
	if err != nil {
		api.logger.Error("storing late answer", errors.Wrap(err, "storing late answer"))
	}
}

// Handlers

func (api *assistantApi) conversation(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ConversationResponse{
		Messages: sess.Conversation.Messages,
		Typing:   api.svc.Typing(sess.ID),
	})
}

// ask stores the question and answers once the assistant is done typing.
func (api *assistantApi) ask(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data QuestionRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuestionRequest")
	}

	reqCtx := ctx.Request().Context()
	task, err := api.svc.Ask(reqCtx, sess.ID, sessionUser(sess), data.Content)
	if err != nil {
		return err
	}
	question, err := assistant.NewMessage(assistant.RoleUser, core.CleanString(data.Content), assistant.NowFunc())
	if err != nil {
		return errors.Wrap(err, "creating message")
	}
	if _, err = api.appendMessage(reqCtx, sess.ID, question); err != nil {
		return errors.Wrap(err, "storing question")
	}

	answer, err := task.Wait(reqCtx)
	if err != nil {
		go api.keepLateAnswer(sess.ID, task)
		return errors.Wrap(err, "waiting for answer")
	}
	if _, err = api.appendMessage(reqCtx, sess.ID, answer); err != nil {
		return errors.Wrap(err, "storing answer")
	}
	return ctx.JSON(http.StatusCreated, AnswerResponse{Question: question, Answer: answer})
}
