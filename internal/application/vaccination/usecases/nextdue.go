package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/vaccination"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type NextDueQuery struct {
	CallerID uint
}

// NextDueView is the earliest unadministered dose on the schedule.
type NextDueView struct {
	VaccineName string `json:"vaccine_name"`
	DoseNumber  int    `json:"dose_number"`
	DueDate     string `json:"due_date"`
	Overdue     bool   `json:"overdue"`
}

// NextDueUseCase walks the immunization schedule against the caller's
// recorded doses. The due dates derive from the profile's date of birth.
type NextDueUseCase struct {
	records  vaccination.Repository
	profiles ProfileDirectory
	logger   logger.Interface
}

func NewNextDueUseCase(
	records vaccination.Repository,
	profiles ProfileDirectory,
	logger logger.Interface,
) *NextDueUseCase {
	return &NextDueUseCase{
		records:  records,
		profiles: profiles,
		logger:   logger,
	}
}

func (uc *NextDueUseCase) Execute(ctx context.Context, query NextDueQuery) (*NextDueView, error) {
	uc.logger.Infow("executing next due vaccine use case")

	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	profile, err := uc.profiles.GetByUserID(ctx, query.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load profile", "error", err)
		return nil, apperrors.NewInternalError("failed to load profile")
	}

	dob, err := time.Parse("2006-01-02", profile.DOB())
	if err != nil {
		return nil, apperrors.NewValidationError("date of birth is required on the profile")
	}

	records, err := uc.records.ListByOwner(ctx, query.CallerID)
	if err != nil {
		uc.logger.Errorw("failed to list vaccination records", "error", err)
		return nil, apperrors.NewInternalError("failed to load vaccination records")
	}

	administered := make(map[vaccination.Dose]bool, len(records))
	for _, record := range records {
		administered[record.Dose()] = true
	}

	due, ok := vaccination.NextDue(vaccination.DefaultSchedule(), dob, administered, time.Now())
	if !ok {
		return nil, apperrors.NewNotFoundError("no pending vaccines")
	}

	return &NextDueView{
		VaccineName: due.VaccineName,
		DoseNumber:  due.DoseNumber,
		DueDate:     due.DueDate.Format("2006-01-02"),
		Overdue:     due.Overdue,
	}, nil
}
