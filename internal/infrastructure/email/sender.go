package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/shared/config"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

var _ outbox.Sender = (*SMTPSender)(nil)

// SMTPSender delivers email channel outbox messages over SMTP.
type SMTPSender struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

// NewSMTPSender creates an SMTP sender from the email configuration.
func NewSMTPSender(cfg *config.EmailConfig, log logger.Interface) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log,
	}
}

// Send delivers one email message. The message payload carries the subject
// and a plain-text body.
func (s *SMTPSender) Send(ctx context.Context, msg *outbox.Message) error {
	if msg.Channel() != outbox.ChannelEmail {
		return fmt.Errorf("smtp sender cannot deliver %s messages", msg.Channel())
	}
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("email sender is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := outbox.DecodeEmailPayload(msg.Payload())
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", msg.Recipient())
	m.SetHeader("Subject", payload.Subject)
	m.SetBody("text/plain", payload.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("email delivered", "message_sid", msg.SID())
	return nil
}
