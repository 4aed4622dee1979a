package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/shared/config"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils/logutil"
)

const (
	// defaultRequestTimeout bounds a single gateway round trip
	defaultRequestTimeout = 15 * time.Second
	// maxResponseSize caps gateway response bodies (1MB)
	maxResponseSize = 1 << 20
	// serviceTokenTTL is the lifetime of a minted gateway bearer
	serviceTokenTTL = 2 * time.Minute
	// gatewayAudience names the gateway in minted service tokens
	gatewayAudience = "anchor-gateway"
)

var _ anchor.ChainClient = (*GatewayClient)(nil)

// gatewayResponse is the envelope every gateway endpoint returns.
type gatewayResponse struct {
	TxHash string `json:"tx_hash,omitempty"`
	Nonce  uint64 `json:"nonce,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GatewayClient talks to the HTTP gateway fronting the complaint anchor
// contract. Every call carries a short-lived HS256 service token minted
// from the shared gateway secret. Request payloads hold 32-byte hashes,
// timestamps, and nonces only.
type GatewayClient struct {
	baseURL    string
	contract   string
	secret     []byte
	httpClient *http.Client
	logger     logger.Interface
}

// NewGatewayClient creates a gateway client from the chain configuration.
func NewGatewayClient(cfg *config.ChainConfig, log logger.Interface) *GatewayClient {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &GatewayClient{
		baseURL:  strings.TrimRight(cfg.GatewayURL, "/"),
		contract: cfg.ContractAddress,
		secret:   []byte(cfg.ServiceSecret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// CreateAnchor submits the initial anchor for a complaint and returns the
// transaction hash the gateway reports.
func (c *GatewayClient) CreateAnchor(ctx context.Context, req anchor.CreateRequest) (string, error) {
	if err := req.Validate(time.Now()); err != nil {
		return "", fmt.Errorf("invalid create anchor request: %w", err)
	}

	body := map[string]any{
		"complaint_hash": req.ComplaintHash,
		"sla_hash":       req.SLAHash,
		"status_hash":    req.StatusHash,
		"created_at":     req.CreatedAt.UTC().Unix(),
		"nonce":          req.Nonce,
	}

	resp, err := c.post(ctx, c.contractURL("anchors"), body)
	if err != nil {
		return "", err
	}

	c.logger.Infow("anchor created on chain",
		"complaint_hash", logutil.HashPrefix(req.ComplaintHash),
		"nonce", req.Nonce,
		"tx_hash", logutil.HashPrefix(resp.TxHash))
	return resp.TxHash, nil
}

// UpdateStatus submits a status update for an anchored complaint.
func (c *GatewayClient) UpdateStatus(ctx context.Context, req anchor.UpdateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("invalid update status request: %w", err)
	}

	body := map[string]any{
		"complaint_hash": req.ComplaintHash,
		"status_hash":    req.StatusHash,
		"updated_at":     req.UpdatedAt.UTC().Unix(),
		"nonce":          req.Nonce,
	}

	resp, err := c.post(ctx, c.contractURL("anchors/status"), body)
	if err != nil {
		return "", err
	}

	c.logger.Infow("status anchor updated on chain",
		"complaint_hash", logutil.HashPrefix(req.ComplaintHash),
		"nonce", req.Nonce,
		"tx_hash", logutil.HashPrefix(resp.TxHash))
	return resp.TxHash, nil
}

// CurrentNonce reads the on-chain nonce recorded for a complaint hash.
func (c *GatewayClient) CurrentNonce(ctx context.Context, complaintHash string) (uint64, error) {
	if !anchor.ValidHash(complaintHash) {
		return 0, fmt.Errorf("complaint hash must be 32 bytes hex")
	}

	url := c.contractURL("anchors/" + complaintHash + "/nonce")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}

	return resp.Nonce, nil
}

// post sends a JSON body to the gateway and decodes the envelope.
func (c *GatewayClient) post(ctx context.Context, url string, body map[string]any) (*gatewayResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// do executes the request with a fresh service token and maps gateway
// failures onto the chain error set.
func (c *GatewayClient) do(req *http.Request) (*gatewayResponse, error) {
	token, err := c.mintServiceToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("anchor gateway unreachable", "url", req.URL.Path, "error", err)
		return nil, fmt.Errorf("%w: %v", anchor.ErrChainUnavailable, err)
	}
	defer resp.Body.Close()

	var envelope gatewayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&envelope); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: gateway returned status %d", anchor.ErrChainUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if err := c.mapStatus(resp.StatusCode, &envelope); err != nil {
		return nil, err
	}

	return &envelope, nil
}

// mapStatus translates gateway status codes and error codes into the
// errors the retry worker distinguishes.
func (c *GatewayClient) mapStatus(status int, envelope *gatewayResponse) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status == http.StatusConflict && envelope.Code == "invalid_nonce":
		return anchor.ErrInvalidNonce
	case status == http.StatusNotFound:
		return anchor.ErrAnchorNotFound
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: gateway returned status %d: %s", anchor.ErrChainUnavailable, status, envelope.Error)
	default:
		return fmt.Errorf("anchor gateway rejected request with status %d: %s", status, envelope.Error)
	}
}

// mintServiceToken signs a short-lived HS256 bearer for the gateway.
func (c *GatewayClient) mintServiceToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "sahay",
		Audience:  jwt.ClaimStrings{gatewayAudience},
		Subject:   c.contract,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(serviceTokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// contractURL builds an endpoint URL scoped to the configured contract.
func (c *GatewayClient) contractURL(path string) string {
	return fmt.Sprintf("%s/v1/contracts/%s/%s", c.baseURL, c.contract, path)
}
