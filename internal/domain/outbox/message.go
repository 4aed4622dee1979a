// Package outbox models queued outbound notifications. Messages are written
// in the same transaction as the domain change that caused them and delivered
// later by the dispatch worker.
package outbox

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Channel is the delivery channel for an outbound message.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

var validChannels = map[Channel]bool{
	ChannelSMS:   true,
	ChannelEmail: true,
}

// NewChannel parses a string into a Channel.
func NewChannel(s string) (Channel, error) {
	c := Channel(s)
	if !validChannels[c] {
		return "", fmt.Errorf("invalid message channel: %s", s)
	}
	return c, nil
}

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool { return validChannels[c] }

// Status is the delivery state of an outbound message.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusSent || s == StatusFailed
}

// Message is one queued outbound notification.
type Message struct {
	id        uint
	sid       string
	userID    uint
	channel   Channel
	recipient string
	payload   string
	status    Status
	attempts  int
	lastError *string
	sentAt    *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewMessage enqueues a message in the pending state.
func NewMessage(userID uint, channel Channel, recipient, payload string) (*Message, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid message channel: %s", channel)
	}
	if recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if payload == "" {
		return nil, fmt.Errorf("payload is required")
	}

	sid, err := id.NewMessageID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	now := time.Now()
	return &Message{
		sid:       sid,
		userID:    userID,
		channel:   channel,
		recipient: recipient,
		payload:   payload,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMessage reconstructs a message from persistence.
func ReconstructMessage(
	internalID uint,
	sid string,
	userID uint,
	channel Channel,
	recipient string,
	payload string,
	status Status,
	attempts int,
	lastError *string,
	sentAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Message, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid message channel: %s", channel)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid message status: %s", status)
	}
	return &Message{
		id:        internalID,
		sid:       sid,
		userID:    userID,
		channel:   channel,
		recipient: recipient,
		payload:   payload,
		status:    status,
		attempts:  attempts,
		lastError: lastError,
		sentAt:    sentAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (m *Message) ID() uint             { return m.id }
func (m *Message) SID() string          { return m.sid }
func (m *Message) UserID() uint         { return m.userID }
func (m *Message) Channel() Channel     { return m.channel }
func (m *Message) Recipient() string    { return m.recipient }
func (m *Message) Payload() string      { return m.payload }
func (m *Message) Status() Status       { return m.status }
func (m *Message) Attempts() int        { return m.attempts }
func (m *Message) LastError() *string   { return m.lastError }
func (m *Message) SentAt() *time.Time   { return m.sentAt }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) UpdatedAt() time.Time { return m.updatedAt }

// SetID sets the message ID (only for persistence layer use).
func (m *Message) SetID(internalID uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = internalID
	return nil
}

// MarkSent records a successful delivery attempt.
func (m *Message) MarkSent() error {
	if m.status != StatusPending {
		return fmt.Errorf("cannot mark %s message as sent", m.status)
	}
	now := time.Now()
	m.status = StatusSent
	m.attempts++
	m.sentAt = &now
	m.lastError = nil
	m.updatedAt = now
	return nil
}

// RecordFailure records a failed delivery attempt. The message stays pending
// until maxAttempts is reached, then flips to failed.
func (m *Message) RecordFailure(deliveryErr string, maxAttempts int) error {
	if m.status != StatusPending {
		return fmt.Errorf("cannot record failure on %s message", m.status)
	}
	m.attempts++
	m.lastError = &deliveryErr
	if m.attempts >= maxAttempts {
		m.status = StatusFailed
	}
	m.updatedAt = time.Now()
	return nil
}
