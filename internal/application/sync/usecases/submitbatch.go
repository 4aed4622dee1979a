package usecases

import (
	"context"
	"strconv"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/domain/wellness"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// maxBatchSize caps one upload; devices split longer backlogs.
const maxBatchSize = 500

// SyncItem is one envelope from a device's offline queue. UserID is the
// owner SID the device recorded; it must match the authenticated caller.
type SyncItem struct {
	EventID    string
	DeviceID   string
	UserID     string
	EntityType string
	Operation  string
	ClientTime string
	Payload    map[string]any
}

type SubmitBatchCommand struct {
	CallerID  uint
	CallerSID string
	IP        string
	Device    string
	Items     []SyncItem
}

// ItemOutcome answers one envelope: accepted, duplicate, or
// rejected:<reason>. ServerID carries the row an accepted CREATE produced.
type ItemOutcome struct {
	EventID  string `json:"event_id"`
	Outcome  string `json:"outcome"`
	ServerID string `json:"server_id"`
}

type SubmitBatchResult struct {
	Outcomes  []ItemOutcome `json:"outcomes"`
	Accepted  int           `json:"accepted"`
	Duplicate int           `json:"duplicate"`
	Rejected  int           `json:"rejected"`
}

type SubmitBatchUseCase struct {
	events    syncevent.Repository
	profiles  user.ProfileRepository
	wellness  wellness.Repository
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewSubmitBatchUseCase(
	events syncevent.Repository,
	profiles user.ProfileRepository,
	wellness wellness.Repository,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *SubmitBatchUseCase {
	return &SubmitBatchUseCase{
		events:    events,
		profiles:  profiles,
		wellness:  wellness,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *SubmitBatchUseCase) Execute(ctx context.Context, cmd SubmitBatchCommand) (*SubmitBatchResult, error) {
	uc.logger.Infow("executing submit batch use case", "items", len(cmd.Items))

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if len(cmd.Items) == 0 {
		return nil, apperrors.NewValidationError("batch is empty")
	}
	if len(cmd.Items) > maxBatchSize {
		return nil, apperrors.NewValidationError("batch exceeds 500 items")
	}

	result := &SubmitBatchResult{Outcomes: make([]ItemOutcome, 0, len(cmd.Items))}
	for _, item := range cmd.Items {
		outcome := uc.processItem(ctx, cmd, item)
		result.Outcomes = append(result.Outcomes, outcome)

		switch {
		case syncevent.Outcome(outcome.Outcome).IsAccepted():
			result.Accepted++
		case syncevent.Outcome(outcome.Outcome).IsDuplicate():
			result.Duplicate++
		default:
			result.Rejected++
		}
	}

	uc.logger.Infow("sync batch processed",
		"accepted", result.Accepted, "duplicate", result.Duplicate, "rejected", result.Rejected)

	return result, nil
}

// processItem resolves one envelope. Structurally invalid envelopes are
// answered without being recorded; everything else lands in the event log
// inside the item's own transaction, so a replay of any recorded event ID
// answers duplicate without touching domain state.
func (uc *SubmitBatchUseCase) processItem(ctx context.Context, cmd SubmitBatchCommand, item SyncItem) ItemOutcome {
	existing, err := uc.events.GetByEventID(ctx, item.EventID)
	if err != nil {
		uc.logger.Warnw("failed to check event log", "event_id", item.EventID, "error", err)
		return answer(item, syncevent.Rejected(syncevent.ReasonTransient), "")
	}
	if existing != nil {
		return answer(item, syncevent.OutcomeDuplicate, existing.ServerID())
	}

	entityType := syncevent.EntityType(item.EntityType)
	if !entityType.IsValid() {
		return answer(item, syncevent.Rejected(syncevent.ReasonUnsupportedEntity), "")
	}
	operation := syncevent.Operation(item.Operation)
	if !operation.IsValid() {
		return answer(item, syncevent.Rejected(syncevent.ReasonUnsupportedOperation), "")
	}

	clientTime, parseErr := time.Parse(time.RFC3339, item.ClientTime)
	if parseErr != nil {
		return answer(item, syncevent.Rejected(syncevent.ReasonInvalidPayload), "")
	}
	event, err := syncevent.NewEvent(item.EventID, item.DeviceID, cmd.CallerID, entityType, operation, clientTime, item.Payload)
	if err != nil {
		return answer(item, syncevent.Rejected(syncevent.ReasonInvalidPayload), "")
	}

	var outcome syncevent.Outcome
	var serverID string
	txErr := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var applyErr error
		outcome, serverID, applyErr = uc.applyEvent(txCtx, cmd, item, entityType, operation, clientTime)
		if applyErr != nil {
			return applyErr
		}
		if err := event.Resolve(outcome, serverID); err != nil {
			return err
		}
		if err := uc.events.Create(txCtx, event); err != nil {
			return err
		}
		if outcome.IsAccepted() {
			_, err := uc.auditor.Append(txCtx, audit.Record{
				ActorID:    cmd.CallerSID,
				Action:     "sync.apply",
				EntityType: "sync_event",
				EntityID:   item.EventID,
				IP:         cmd.IP,
				Device:     cmd.Device,
				Payload: map[string]any{
					"entity_type": item.EntityType,
					"operation":   item.Operation,
				},
			})
			return err
		}
		return nil
	})
	if txErr != nil {
		// Two devices racing the same event ID hit the unique key; the
		// first insert owns the envelope.
		if apperrors.IsConflictError(txErr) {
			if winner, err := uc.events.GetByEventID(ctx, item.EventID); err == nil && winner != nil {
				return answer(item, syncevent.OutcomeDuplicate, winner.ServerID())
			}
		}
		uc.logger.Warnw("sync item failed", "event_id", item.EventID, "error", txErr)
		return answer(item, syncevent.Rejected(syncevent.ReasonTransient), "")
	}

	return answer(item, outcome, serverID)
}

// applyEvent performs the domain write for one envelope. A returned error
// aborts and rolls back the item; a rejection outcome with nil error is
// recorded alongside the untouched domain state.
func (uc *SubmitBatchUseCase) applyEvent(
	ctx context.Context,
	cmd SubmitBatchCommand,
	item SyncItem,
	entityType syncevent.EntityType,
	operation syncevent.Operation,
	clientTime time.Time,
) (syncevent.Outcome, string, error) {
	if item.UserID != cmd.CallerSID {
		return syncevent.Rejected(syncevent.ReasonUserMismatch), "", nil
	}

	if entityType == syncevent.EntityProfile {
		return uc.applyProfileWrite(ctx, cmd, item, operation, clientTime)
	}

	// Wellness entities are append-only logs.
	if operation != syncevent.OpCreate {
		return syncevent.Rejected(syncevent.ReasonAppendOnly), "", nil
	}

	switch entityType {
	case syncevent.EntityVitals:
		return uc.applyVitals(ctx, cmd, item)
	case syncevent.EntityMood:
		return uc.applyMood(ctx, cmd, item)
	case syncevent.EntityWater:
		return uc.applyWater(ctx, cmd, item)
	default:
		return syncevent.Rejected(syncevent.ReasonUnsupportedEntity), "", nil
	}
}

// applyProfileWrite resolves any profile operation through LWW. Devices
// queue their initial profile write as a CREATE, so it applies exactly
// like an UPDATE; a DELETE blanks the synced fields, not the row, and
// competes on the same client-time ordering as every other write.
func (uc *SubmitBatchUseCase) applyProfileWrite(ctx context.Context, cmd SubmitBatchCommand, item SyncItem, operation syncevent.Operation, clientTime time.Time) (syncevent.Outcome, string, error) {
	profile, err := uc.profiles.GetByUserID(ctx, cmd.CallerID)
	if err != nil {
		return "", "", err
	}

	if !profile.Accepts(clientTime, item.EventID) {
		return syncevent.Rejected(syncevent.ReasonStale), "", nil
	}

	update := user.ProfileUpdate{}
	if operation != syncevent.OpDelete {
		update = user.ProfileUpdate{
			NameAlias: stringField(item.Payload, "name_alias"),
			DOB:       stringField(item.Payload, "dob"),
			Sex:       stringField(item.Payload, "sex"),
			Pincode:   stringField(item.Payload, "pincode"),
		}
	}
	if err := profile.Apply(update, clientTime, item.EventID); err != nil {
		return syncevent.Rejected(syncevent.ReasonStale), "", nil
	}
	if err := uc.profiles.Update(ctx, profile); err != nil {
		return "", "", err
	}
	return syncevent.OutcomeAccepted, "", nil
}

func (uc *SubmitBatchUseCase) applyVitals(ctx context.Context, cmd SubmitBatchCommand, item SyncItem) (syncevent.Outcome, string, error) {
	value, ok := numberField(item.Payload, "value")
	measuredAt, timeOK := timeField(item.Payload, "measured_at")
	if !ok || !timeOK {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}

	record, err := wellness.NewVitalsRecord(
		cmd.CallerID,
		stringField(item.Payload, "vital_type"),
		value,
		stringField(item.Payload, "unit"),
		measuredAt,
		item.EventID,
	)
	if err != nil {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}
	if err := uc.wellness.CreateVitals(ctx, record); err != nil {
		return "", "", err
	}
	return syncevent.OutcomeAccepted, rowID(record.ID()), nil
}

func (uc *SubmitBatchUseCase) applyMood(ctx context.Context, cmd SubmitBatchCommand, item SyncItem) (syncevent.Outcome, string, error) {
	scale, ok := intField(item.Payload, "mood_scale")
	loggedAt, timeOK := timeField(item.Payload, "logged_at")
	if !ok || !timeOK {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}

	record, err := wellness.NewMoodRecord(
		cmd.CallerID,
		scale,
		stringField(item.Payload, "notes"),
		loggedAt,
		item.EventID,
	)
	if err != nil {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}
	if err := uc.wellness.CreateMood(ctx, record); err != nil {
		return "", "", err
	}
	return syncevent.OutcomeAccepted, rowID(record.ID()), nil
}

func (uc *SubmitBatchUseCase) applyWater(ctx context.Context, cmd SubmitBatchCommand, item SyncItem) (syncevent.Outcome, string, error) {
	amount, ok := intField(item.Payload, "amount_ml")
	loggedAt, timeOK := timeField(item.Payload, "logged_at")
	if !ok || !timeOK {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}

	record, err := wellness.NewWaterRecord(cmd.CallerID, amount, loggedAt, item.EventID)
	if err != nil {
		return syncevent.Rejected(syncevent.ReasonInvalidPayload), "", nil
	}
	if err := uc.wellness.CreateWater(ctx, record); err != nil {
		return "", "", err
	}
	return syncevent.OutcomeAccepted, rowID(record.ID()), nil
}

func answer(item SyncItem, outcome syncevent.Outcome, serverID string) ItemOutcome {
	return ItemOutcome{
		EventID:  item.EventID,
		Outcome:  outcome.String(),
		ServerID: serverID,
	}
}

func rowID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// numberField accepts JSON numbers however the decoder delivered them.
func numberField(payload map[string]any, key string) (float64, bool) {
	switch v := payload[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func intField(payload map[string]any, key string) (int, bool) {
	f, ok := numberField(payload, key)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func timeField(payload map[string]any, key string) (time.Time, bool) {
	s, ok := payload[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
