package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/shared/config"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	// requestTimeout bounds a single gateway round trip
	requestTimeout = 10 * time.Second
	// maxResponseSize caps gateway error bodies read for diagnostics (256KB)
	maxResponseSize = 256 << 10
)

var _ outbox.Sender = (*GatewaySender)(nil)

// GatewaySender delivers sms channel outbox messages through the government
// SMS gateway. The gateway requires OAuth2 client-credentials bearers; the
// token source caches and refreshes them across calls.
type GatewaySender struct {
	baseURL    string
	senderID   string
	enabled    bool
	httpClient *http.Client
	logger     logger.Interface
}

// NewGatewaySender creates an SMS sender from the gateway configuration.
func NewGatewaySender(cfg *config.SMSGatewayConfig, log logger.Interface) *GatewaySender {
	oauthCfg := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	client := oauthCfg.Client(context.Background())
	client.Timeout = requestTimeout

	return &GatewaySender{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		senderID:   cfg.SenderID,
		enabled:    cfg.Enabled,
		httpClient: client,
		logger:     log,
	}
}

// Send delivers one SMS message.
func (s *GatewaySender) Send(ctx context.Context, msg *outbox.Message) error {
	if msg.Channel() != outbox.ChannelSMS {
		return fmt.Errorf("sms sender cannot deliver %s messages", msg.Channel())
	}
	if !s.enabled {
		return fmt.Errorf("sms gateway is disabled")
	}

	payload, err := outbox.DecodeSMSPayload(msg.Payload())
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"sender_id": s.senderID,
		"to":        msg.Recipient(),
		"text":      payload.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("sms gateway rejected message with status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	s.logger.Debugw("sms delivered", "message_sid", msg.SID())
	return nil
}
