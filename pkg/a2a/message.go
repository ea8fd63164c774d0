package a2a

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"

	KindMessage = "message"
	KindTask    = "task"
)

/*
Message represents all non‑artifact communication between client & agent.
*/
type Message struct {
	Kind      string         `json:"kind"`
	MessageID string         `json:"messageId"`
	Role      string         `json:"role"` // "user" or "agent"
	Parts     []Part         `json:"parts"`
	ContextID string         `json:"contextId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

/*
NewTextMessage builds a single text part message. The message ID is a random
UUID in its 32 character hex form.
*/
func NewTextMessage(role string, text string) Message {
	return Message{
		Kind:      KindMessage,
		MessageID: NewMessageID(),
		Role:      role,
		Parts:     []Part{NewTextPart(text)},
	}
}

func NewMessageID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

/*
Text joins the text parts of the message, one per line.
*/
func (msg *Message) Text() string {
	return joinText(msg.Parts)
}

func joinText(parts []Part) string {
	texts := make([]string, 0, len(parts))

	for _, part := range parts {
		if part.Kind == PartKindText && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "\n")
}
