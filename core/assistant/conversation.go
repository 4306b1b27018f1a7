package assistant

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const welcomeID = "welcome"

const WelcomeText = "Hi! I'm your Degree Progress AI Assistant. I can help you understand your academic progress, " +
	"answer questions about your requirements, and provide guidance on your path to graduation. What would you like to know?"

type (
	Message struct {
		ID        string    `json:"id"`
		Role      string    `json:"role"`
		Content   string    `json:"content"`
		Timestamp time.Time `json:"timestamp"` // UTC
	}

	// Conversation is the chat history of a session, oldest message first.
	Conversation struct {
		Messages []Message `json:"messages"`
	}
)

// NewConversation starts a conversation with the welcome message.
func NewConversation(now time.Time) Conversation {
	return Conversation{Messages: []Message{{
		ID:        welcomeID,
		Role:      RoleAssistant,
		Content:   WelcomeText,
		Timestamp: now.UTC(),
	}}}
}

// NewMessage returns a message with a fresh ID.
func NewMessage(role, content string, now time.Time) (Message, error) {
	id, err := gonanoid.New()
	if err != nil {
		return Message{}, err
	}
	return Message{ID: id, Role: role, Content: content, Timestamp: now.UTC()}, nil
}

func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// Last returns the latest message, if any.
func (c Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
