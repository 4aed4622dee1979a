package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// EmitEventCommand carries one analytics emission. The caller identity is
// used for the consent check and the audit link only; nothing identifying
// reaches the payload.
type EmitEventCommand struct {
	CallerID  uint
	CallerSID string
	EventType string
	Category  string
	Metadata  map[string]any
	IP        string
	Device    string
}

// EmitEventResult echoes the de-identified payload that was recorded.
type EmitEventResult struct {
	EventSID      string `json:"event_sid"`
	EventType     string `json:"event_type"`
	Category      string `json:"category"`
	EventTime     string `json:"event_time"`
	GeoCell       string `json:"geo_cell"`
	AgeBucket     string `json:"age_bucket"`
	Gender        string `json:"gender"`
	SchemaVersion string `json:"schema_version"`
	CreatedAt     string `json:"created_at"`
}

// EmitEventUseCase validates, de-identifies, and records one analytics
// event: consent gate first, then bucketing through the payload
// constructor, an audit-trail row, and the in-memory aggregation buffer.
// Reaching the flush threshold triggers a flush on the emitter's request.
type EmitEventUseCase struct {
	events    analytics.EventRepository
	profiles  ProfileDirectory
	consents  ConsentGuard
	buffer    *analytics.Buffer
	flusher   BufferFlusher
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewEmitEventUseCase(
	events analytics.EventRepository,
	profiles ProfileDirectory,
	consents ConsentGuard,
	buffer *analytics.Buffer,
	flusher BufferFlusher,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *EmitEventUseCase {
	return &EmitEventUseCase{
		events:    events,
		profiles:  profiles,
		consents:  consents,
		buffer:    buffer,
		flusher:   flusher,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *EmitEventUseCase) Execute(ctx context.Context, cmd EmitEventCommand) (*EmitEventResult, error) {
	uc.logger.Infow("executing emit analytics event use case",
		"caller", cmd.CallerSID, "event_type", cmd.EventType)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	if err := uc.consents.Require(ctx, cmd.CallerID, consent.CategoryAnalytics, consent.ScopeGovAggregated); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to check consent")
	}

	demo, err := uc.demographics(ctx, cmd.CallerID)
	if err != nil {
		return nil, err
	}

	payload, err := analytics.NewPayload(
		analytics.EventType(cmd.EventType), cmd.Category, time.Now(), demo, cmd.Metadata)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	event, err := analytics.NewStoredEvent(cmd.CallerID, payload)
	if err != nil {
		uc.logger.Errorw("failed to build analytics event", "error", err)
		return nil, apperrors.NewInternalError("failed to record analytics event")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.events.Create(txCtx, event); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "analytics.event.generate",
			EntityType: "analytics_event",
			EntityID:   event.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"event_type": payload.EventType.String(),
				"category":   payload.Category,
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to record analytics event", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to record analytics event")
	}

	if uc.buffer.Add(payload) {
		// The emission is already durable; a failed flush keeps the
		// counts buffered for the scheduled job.
		if _, err := uc.flusher.Execute(ctx); err != nil {
			uc.logger.Warnw("threshold flush failed, counts stay buffered", "error", err)
		}
	}

	return &EmitEventResult{
		EventSID:      event.SID(),
		EventType:     payload.EventType.String(),
		Category:      payload.Category,
		EventTime:     payload.EventTime.Format(time.RFC3339),
		GeoCell:       payload.GeoCell,
		AgeBucket:     payload.AgeBucket,
		Gender:        payload.Gender,
		SchemaVersion: payload.SchemaVersion,
		CreatedAt:     event.CreatedAt().Format(time.RFC3339),
	}, nil
}

// demographics loads the caller's profile slice for bucketing. Users
// without a profile emit with every dimension at unknown.
func (uc *EmitEventUseCase) demographics(ctx context.Context, userID uint) (analytics.Demographics, error) {
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return analytics.Demographics{}, nil
		}
		uc.logger.Errorw("failed to load profile for analytics", "user_id", userID, "error", err)
		return analytics.Demographics{}, apperrors.NewInternalError("failed to load profile")
	}
	return analytics.Demographics{
		Age:     ageFromDOB(profile.DOB(), time.Now()),
		Sex:     profile.Sex(),
		Pincode: profile.Pincode(),
	}, nil
}

// ageFromDOB derives whole years from a synced date of birth. Missing or
// unparsable values degrade to the unknown bucket.
func ageFromDOB(dob string, now time.Time) *int {
	if dob == "" {
		return nil
	}
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return nil
	}
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	if years < 0 {
		return nil
	}
	return &years
}
