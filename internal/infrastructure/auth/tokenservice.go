package auth

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/shared/services"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// TokenPrefix marks bearer tokens issued by this service.
const TokenPrefix = "sah"

// touchInterval bounds last-used writes to one per token per interval.
const touchInterval = 5 * time.Minute

// TokenService issues and resolves opaque bearer tokens. Tokens are random,
// stored as SHA-256 hashes, and revocable server-side; there is nothing to
// decode client-side.
type TokenService struct {
	generator services.TokenGenerator
	tokens    user.TokenRepository
	users     user.Repository
	expiry    time.Duration
	logger    logger.Interface
}

func NewTokenService(
	tokens user.TokenRepository,
	users user.Repository,
	expiry time.Duration,
	lg logger.Interface,
) *TokenService {
	return &TokenService{
		generator: services.NewTokenGenerator(),
		tokens:    tokens,
		users:     users,
		expiry:    expiry,
		logger:    lg.Named("tokenservice"),
	}
}

// Issue mints a bearer token for the user. The plain token is returned
// exactly once; only its hash is stored.
func (s *TokenService) Issue(ctx context.Context, userID uint) (string, *user.AccessToken, error) {
	plainToken, tokenHash, err := s.generator.GenerateAccessToken(TokenPrefix)
	if err != nil {
		return "", nil, err
	}

	token, err := user.NewAccessToken(userID, tokenHash, time.Now().Add(s.expiry))
	if err != nil {
		return "", nil, err
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return "", nil, err
	}

	return plainToken, token, nil
}

// Authenticate resolves a presented bearer token to its user. Expired and
// revoked tokens fail the same way as unknown ones.
func (s *TokenService) Authenticate(ctx context.Context, plainToken string) (*user.User, *user.AccessToken, error) {
	token, err := s.tokens.GetByHash(ctx, s.generator.HashToken(plainToken))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil, apperrors.NewUnauthorizedError("invalid or expired token")
		}
		return nil, nil, err
	}

	now := time.Now()
	if !token.IsValid(now) {
		return nil, nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	u, err := s.users.GetByID(ctx, token.UserID())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil, apperrors.NewUnauthorizedError("invalid or expired token")
		}
		return nil, nil, err
	}
	if !u.CanAuthenticate() {
		return nil, nil, apperrors.NewUnauthorizedError("account is not active")
	}

	s.touch(ctx, token, now)

	return u, token, nil
}

// Revoke invalidates one presented token, used on logout.
func (s *TokenService) Revoke(ctx context.Context, plainToken string) error {
	token, err := s.tokens.GetByHash(ctx, s.generator.HashToken(plainToken))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			// Logout with an unknown token is not an error.
			return nil
		}
		return err
	}

	token.Revoke()
	return s.tokens.Update(ctx, token)
}

func (s *TokenService) touch(ctx context.Context, token *user.AccessToken, now time.Time) {
	last := token.LastUsedAt()
	if last != nil && now.Sub(*last) < touchInterval {
		return
	}

	token.Touch(now)
	if err := s.tokens.Update(ctx, token); err != nil {
		// Stale last-used is acceptable; authentication already succeeded.
		s.logger.Warnw("failed to record token use", "error", err)
	}
}
