package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/vaccination"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

const maxVaccineNameLength = 100

// RecordVaccinationCommand carries one administered dose. AdministeredAt
// accepts RFC 3339 or a bare civil date.
type RecordVaccinationCommand struct {
	CallerID       uint
	CallerSID      string
	VaccineName    string
	DoseNumber     int
	AdministeredAt string
	IP             string
	Device         string
}

// RecordVaccinationResult echoes the stored record.
type RecordVaccinationResult struct {
	RecordSID      string `json:"record_sid"`
	VaccineName    string `json:"vaccine_name"`
	DoseNumber     int    `json:"dose_number"`
	AdministeredAt string `json:"administered_at"`
	CreatedAt      string `json:"created_at"`
}

// RecordVaccinationUseCase records an administered dose for its owner.
type RecordVaccinationUseCase struct {
	records   vaccination.Repository
	sanitizer sanitize.Service
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewRecordVaccinationUseCase(
	records vaccination.Repository,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *RecordVaccinationUseCase {
	return &RecordVaccinationUseCase{
		records:   records,
		sanitizer: sanitizer,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *RecordVaccinationUseCase) Execute(ctx context.Context, cmd RecordVaccinationCommand) (*RecordVaccinationResult, error) {
	uc.logger.Infow("executing record vaccination use case", "caller", cmd.CallerSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	name := uc.sanitizer.PlainText(cmd.VaccineName)
	if name == "" {
		return nil, apperrors.NewValidationError("vaccine name is required")
	}
	if len(name) > maxVaccineNameLength {
		return nil, apperrors.NewValidationError("vaccine name is too long")
	}
	if cmd.DoseNumber < 1 {
		return nil, apperrors.NewValidationError("dose number must be at least 1")
	}

	administeredAt, err := parseAdministeredAt(cmd.AdministeredAt)
	if err != nil {
		return nil, apperrors.NewValidationError("administered_at must be an RFC 3339 timestamp or a date")
	}

	record, err := vaccination.NewRecord(cmd.CallerID, name, cmd.DoseNumber, administeredAt)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.records.Create(txCtx, record); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "vax.record.create",
			EntityType: "vaccination_record",
			EntityID:   record.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"vaccine":     record.VaccineName(),
				"dose_number": record.DoseNumber(),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to record vaccination", "error", err)
		return nil, apperrors.NewInternalError("failed to record vaccination")
	}

	uc.logger.Infow("vaccination recorded",
		"record_sid", record.SID(), "vaccine", record.VaccineName(), "dose", record.DoseNumber())

	return &RecordVaccinationResult{
		RecordSID:      record.SID(),
		VaccineName:    record.VaccineName(),
		DoseNumber:     record.DoseNumber(),
		AdministeredAt: record.AdministeredAt().Format(time.RFC3339),
		CreatedAt:      record.CreatedAt().Format(time.RFC3339),
	}, nil
}

func parseAdministeredAt(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
