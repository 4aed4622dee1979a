package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

var _ consent.Checker = (*ConsentChecker)(nil)

// ConsentChecker answers consent questions from committed receipt rows.
// Receipts recorded under an older consent document version do not count;
// the user has to re-consent after a document bump.
type ConsentChecker struct {
	records         consent.Repository
	documentVersion string
	logger          logger.Interface
}

func NewConsentChecker(
	records consent.Repository,
	documentVersion string,
	logger logger.Interface,
) *ConsentChecker {
	return &ConsentChecker{
		records:         records,
		documentVersion: documentVersion,
		logger:          logger,
	}
}

// IsGranted reports whether the user currently grants category+scope.
func (c *ConsentChecker) IsGranted(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) (bool, error) {
	record, err := c.records.GetCurrent(ctx, userID, category, scope, time.Now())
	if err != nil {
		c.logger.Errorw("failed to read consent state",
			"error", err, "user_id", userID, "category", category, "scope", scope)
		return false, err
	}
	if record == nil {
		return false, nil
	}
	return record.GrantsUnder(c.documentVersion), nil
}

// Require returns a ConsentMissing error when the grant is absent.
func (c *ConsentChecker) Require(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) error {
	granted, err := c.IsGranted(ctx, userID, category, scope)
	if err != nil {
		return apperrors.NewInternalError("failed to check consent")
	}
	if !granted {
		return apperrors.NewConsentMissingError(
			fmt.Sprintf("consent %s/%s is required", category, scope))
	}
	return nil
}
