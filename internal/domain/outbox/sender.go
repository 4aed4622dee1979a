package outbox

import (
	"context"
	"encoding/json"
	"fmt"
)

// MaxSMSTextLength caps queued SMS text at three concatenated segments.
const MaxSMSTextLength = 480

// Sender delivers a pending message over one channel. The dispatch worker
// picks the sender by the message's channel.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// EmailPayload is the JSON payload carried by email channel messages.
type EmailPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SMSPayload is the JSON payload carried by sms channel messages.
type SMSPayload struct {
	Text string `json:"text"`
}

// EncodeEmailPayload serializes an email payload for queueing.
func EncodeEmailPayload(p EmailPayload) (string, error) {
	if p.Subject == "" {
		return "", fmt.Errorf("email subject is required")
	}
	if p.Body == "" {
		return "", fmt.Errorf("email body is required")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode email payload: %w", err)
	}
	return string(data), nil
}

// DecodeEmailPayload parses the payload of an email channel message.
func DecodeEmailPayload(payload string) (EmailPayload, error) {
	var p EmailPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return EmailPayload{}, fmt.Errorf("failed to decode email payload: %w", err)
	}
	if p.Subject == "" || p.Body == "" {
		return EmailPayload{}, fmt.Errorf("email payload missing subject or body")
	}
	return p, nil
}

// EncodeSMSPayload serializes an SMS payload for queueing.
func EncodeSMSPayload(p SMSPayload) (string, error) {
	if p.Text == "" {
		return "", fmt.Errorf("sms text is required")
	}
	if len(p.Text) > MaxSMSTextLength {
		return "", fmt.Errorf("sms text exceeds %d characters", MaxSMSTextLength)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode sms payload: %w", err)
	}
	return string(data), nil
}

// DecodeSMSPayload parses the payload of an sms channel message.
func DecodeSMSPayload(payload string) (SMSPayload, error) {
	var p SMSPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return SMSPayload{}, fmt.Errorf("failed to decode sms payload: %w", err)
	}
	if p.Text == "" {
		return SMSPayload{}, fmt.Errorf("sms payload missing text")
	}
	return p, nil
}
