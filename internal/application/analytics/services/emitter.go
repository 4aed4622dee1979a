package services

import (
	"context"

	"github.com/sahay-inc/sahay/internal/application/analytics/usecases"
	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// Emitter records analytics events from request flows without ever
// failing them. A missing consent skips the emission; any other failure
// is logged and swallowed, because the primary operation has already
// committed by the time these run.
type Emitter struct {
	emit   usecases.EmitEventExecutor
	logger logger.Interface
}

func NewEmitter(emit usecases.EmitEventExecutor, logger logger.Interface) *Emitter {
	return &Emitter{
		emit:   emit,
		logger: logger,
	}
}

// Emit records one event for a consenting user.
func (e *Emitter) Emit(ctx context.Context, userID uint, userSID string, eventType analytics.EventType, category string, metadata map[string]any) {
	if userID == 0 || userSID == "" {
		return
	}
	_, err := e.emit.Execute(ctx, usecases.EmitEventCommand{
		CallerID:  userID,
		CallerSID: userSID,
		EventType: eventType.String(),
		Category:  category,
		Metadata:  metadata,
	})
	if err == nil || apperrors.IsConsentMissingError(err) {
		return
	}
	e.logger.Warnw("analytics emission failed",
		"event_type", eventType.String(), "error", err)
}

// EmitTriage records a triage completion, switching to the emergency
// event for emergency dispositions.
func (e *Emitter) EmitTriage(ctx context.Context, userID uint, userSID string, category string, hasRedFlags bool) {
	eventType := analytics.EventTriageCompleted
	if category == "emergency" {
		eventType = analytics.EventTriageEmergency
	}
	e.Emit(ctx, userID, userSID, eventType, category, map[string]any{
		"has_red_flags": hasRedFlags,
	})
}

// EmitNeuroscreen records a completed screening. The band doubles as the
// event category, so dashboards aggregate by severity without ever seeing
// the answers.
func (e *Emitter) EmitNeuroscreen(ctx context.Context, userID uint, userSID string, band string) {
	e.Emit(ctx, userID, userSID, analytics.EventNeuroscreenCompleted, band, nil)
}

// EmitVaccination records an administered dose.
func (e *Emitter) EmitVaccination(ctx context.Context, userID uint, userSID string, vaccineName string, doseNumber int) {
	e.Emit(ctx, userID, userSID, analytics.EventVaccinationRecorded, "", map[string]any{
		"vaccine":     vaccineName,
		"dose_number": doseNumber,
	})
}

// EmitComplaint records a complaint lifecycle event. Anonymous complaints
// carry no consent subject and are skipped.
func (e *Emitter) EmitComplaint(ctx context.Context, userID *uint, userSID string, eventType analytics.EventType, category string, escalationLevel int) {
	if userID == nil {
		return
	}
	e.Emit(ctx, *userID, userSID, eventType, category, map[string]any{
		"escalation_level": escalationLevel,
	})
}
