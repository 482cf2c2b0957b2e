package model

import "time"

// Broadcast is the recipient that addresses every participant
const Broadcast = "Todos"

// Status texts appended on join and on eviction
const (
	JoinText  = "entra na sala..."
	LeaveText = "sai da sala..."
)

// Kind is the type of a stored message
type Kind string

const (
	KindMessage        Kind = "message"
	KindPrivateMessage Kind = "private_message"
	KindStatus         Kind = "status"
)

// Postable reports whether participants may send messages of this kind.
// Status messages are reserved for join/leave notices.
func (k Kind) Postable() bool {
	return k == KindMessage || k == KindPrivateMessage
}

// Valid reports whether k can be stored
func (k Kind) Valid() bool {
	return k.Postable() || k == KindStatus
}

// TimeLayout is the display format of Message.Time
const TimeLayout = "15:04:05"

// Message represents a chat message
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Type      Kind      `json:"type"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"-"`
}

// NewStatus builds a system status message for name
func NewStatus(name, text string) Message {
	return Message{
		From: name,
		To:   Broadcast,
		Text: text,
		Type: KindStatus,
	}
}

// MessagePatch holds the editable fields of a message. Nil fields are left untouched.
type MessagePatch struct {
	To   *string
	Text *string
	Type *Kind
}

// Apply merges the patch into m
func (p MessagePatch) Apply(m Message) Message {
	if p.To != nil {
		m.To = *p.To
	}
	if p.Text != nil {
		m.Text = *p.Text
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	return m
}

// Event types pushed over the websocket change feed
const (
	EventMessageCreated = "message_created"
	EventMessageUpdated = "message_updated"
	EventMessageDeleted = "message_deleted"
)

// Event is a change notification for a single message
type Event struct {
	Type    string  `json:"type"`
	Message Message `json:"message"`
}
