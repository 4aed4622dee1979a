package usecases

import (
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

// Window reports the resolved time range a query covered, RFC3339.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// resolveWindow parses the optional RFC3339 bounds of a dashboard query.
// Empty bounds fall back to the trailing span ending now.
func resolveWindow(fromRaw, toRaw string, span time.Duration) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.Add(-span)
	to := now

	if fromRaw != "" {
		parsed, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("from must be RFC3339")
		}
		from = parsed
	}
	if toRaw != "" {
		parsed, err := time.Parse(time.RFC3339, toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("to must be RFC3339")
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("to must not precede from")
	}

	return from, to, nil
}

func windowOf(from, to time.Time) Window {
	return Window{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}
}

// eventTypeFilter validates an optional event type filter against the
// allow-list. An empty value means no filter.
func eventTypeFilter(raw string) (*analytics.EventType, error) {
	if raw == "" {
		return nil, nil
	}
	eventType := analytics.EventType(raw)
	if !eventType.IsValid() {
		return nil, apperrors.NewValidationError("unknown event type: " + raw)
	}
	return &eventType, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
