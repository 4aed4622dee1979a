package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// EscalationSweepResult summarizes one sweep pass.
type EscalationSweepResult struct {
	Checked   int `json:"checked"`
	Escalated int `json:"escalated"`
	Exhausted int `json:"exhausted"`
}

// EscalationSweepUseCase bumps SLA-breached complaints one administrative
// tier. District breaches go to state, state to national; national breaches
// are marked exhausted and left alone afterwards. Each complaint commits in
// its own transaction so one failure never rolls back the rest of the sweep.
type EscalationSweepUseCase struct {
	complaints complaint.Repository
	slaRules   complaint.SLARuleRepository
	histories  complaint.StatusHistoryRepository
	anchors    anchor.Repository
	users      UserDirectory
	messages   MessageQueue
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewEscalationSweepUseCase(
	complaints complaint.Repository,
	slaRules complaint.SLARuleRepository,
	histories complaint.StatusHistoryRepository,
	anchors anchor.Repository,
	users UserDirectory,
	messages MessageQueue,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *EscalationSweepUseCase {
	return &EscalationSweepUseCase{
		complaints: complaints,
		slaRules:   slaRules,
		histories:  histories,
		anchors:    anchors,
		users:      users,
		messages:   messages,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *EscalationSweepUseCase) Execute(ctx context.Context) (*EscalationSweepResult, error) {
	rules, err := uc.slaRules.List(ctx, nil)
	if err != nil {
		uc.logger.Errorw("failed to load SLA rules", "error", err)
		return nil, apperrors.NewInternalError("failed to load SLA rules")
	}
	if len(rules) == 0 {
		uc.logger.Warnw("no SLA rules configured, skipping escalation sweep")
		return &EscalationSweepResult{}, nil
	}
	table := complaint.BuildSLATable(rules)

	now := time.Now()
	breached, err := uc.complaints.ListSLABreached(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to list SLA-breached complaints", "error", err)
		return nil, apperrors.NewInternalError("failed to list breached complaints")
	}

	result := &EscalationSweepResult{Checked: len(breached)}
	for _, grievance := range breached {
		if grievance.EscalationExhausted() {
			continue
		}

		if grievance.CanEscalate() {
			if err := uc.escalate(ctx, table, grievance, now); err != nil {
				uc.logger.Warnw("failed to escalate complaint",
					"complaint_sid", grievance.SID(), "error", err)
				continue
			}
			result.Escalated++
			continue
		}

		if grievance.EscalationLevel().IsHighest() {
			if err := uc.exhaust(ctx, grievance); err != nil {
				uc.logger.Warnw("failed to mark escalation exhausted",
					"complaint_sid", grievance.SID(), "error", err)
				continue
			}
			result.Exhausted++
		}
	}

	uc.logger.Infow("escalation sweep complete",
		"checked", result.Checked, "escalated", result.Escalated, "exhausted", result.Exhausted)
	return result, nil
}

func (uc *EscalationSweepUseCase) escalate(ctx context.Context, table complaint.SLATable, grievance *complaint.Complaint, now time.Time) error {
	oldStatus := grievance.Status()
	oldLevel := grievance.EscalationLevel()

	next, err := oldLevel.Next()
	if err != nil {
		return err
	}
	deadline, ok := table.Deadline(grievance.Category(), next, now)
	if !ok {
		deadline = now.Add(complaint.DefaultSLAWindow)
	}
	if err := grievance.Escalate(deadline); err != nil {
		return err
	}

	recipient := uc.smsRecipient(ctx, grievance.SubmitterID())

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, grievance); err != nil {
			return err
		}

		change, err := complaint.NewStatusChange(
			grievance.ID(),
			oldStatus, grievance.Status(),
			oldLevel, grievance.EscalationLevel(),
			nil, "sla deadline breached", true,
		)
		if err != nil {
			return err
		}
		if err := uc.histories.Create(txCtx, change); err != nil {
			return err
		}

		if err := queueStatusAnchor(txCtx, uc.anchors, grievance, uc.logger); err != nil {
			return err
		}

		if recipient != "" {
			text := fmt.Sprintf("Your complaint %s has been escalated to the %s level.",
				grievance.SID(), grievance.EscalationLevel().String())
			message, err := outbox.NewMessage(*grievance.SubmitterID(), outbox.ChannelSMS, recipient, text)
			if err != nil {
				return err
			}
			if err := uc.messages.Create(txCtx, message); err != nil {
				return err
			}
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			Action:     "complaint.escalate",
			EntityType: "complaint",
			EntityID:   grievance.SID(),
			Payload: map[string]any{
				"from_level":   oldLevel.String(),
				"to_level":     grievance.EscalationLevel().String(),
				"sla_deadline": grievance.SLADeadline().Format(time.RFC3339),
			},
		})
		return err
	})
}

func (uc *EscalationSweepUseCase) exhaust(ctx context.Context, grievance *complaint.Complaint) error {
	if err := grievance.MarkEscalationExhausted(); err != nil {
		return err
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, grievance); err != nil {
			return err
		}

		_, err := uc.auditor.Append(txCtx, audit.Record{
			Action:     "complaint.escalate",
			EntityType: "complaint",
			EntityID:   grievance.SID(),
			Payload: map[string]any{
				"escalation_level": grievance.EscalationLevel().String(),
				"exhausted":        true,
			},
		})
		return err
	})
}

func (uc *EscalationSweepUseCase) smsRecipient(ctx context.Context, submitterID *uint) string {
	if submitterID == nil {
		return ""
	}
	submitter, err := uc.users.GetByID(ctx, *submitterID)
	if err != nil {
		uc.logger.Warnw("failed to resolve submitter for escalation notice",
			"submitter_id", *submitterID, "error", err)
		return ""
	}
	if phone := submitter.Phone(); phone != nil {
		return *phone
	}
	return ""
}
