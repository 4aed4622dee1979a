package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/telemed"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type TeleRequestRepository struct {
	db     *gorm.DB
	mapper mappers.TelemedMapper
}

func NewTeleRequestRepository(gdb *gorm.DB) *TeleRequestRepository {
	return &TeleRequestRepository{
		db:     gdb,
		mapper: mappers.NewTelemedMapper(),
	}
}

func (r *TeleRequestRepository) Create(ctx context.Context, request *telemed.TeleRequest) error {
	model := r.mapper.RequestToModel(request)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tele request: %w", err)
	}

	return request.SetID(model.ID)
}

func (r *TeleRequestRepository) GetBySID(ctx context.Context, sid string) (*telemed.TeleRequest, error) {
	var model models.TeleRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("tele request not found")
		}
		return nil, fmt.Errorf("failed to find tele request: %w", err)
	}

	return r.mapper.RequestToDomain(&model)
}

func (r *TeleRequestRepository) Update(ctx context.Context, request *telemed.TeleRequest) error {
	model := r.mapper.RequestToModel(request)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TeleRequestModel{}).
		Where("id = ?", model.ID).
		Select("ClinicianID", "Status", "Version", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update tele request: %w", result.Error)
	}

	return nil
}

func (r *TeleRequestRepository) List(
	ctx context.Context,
	filter telemed.ListFilter,
) ([]*telemed.TeleRequest, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TeleRequestModel{})

	if filter.CitizenID != nil {
		query = query.Where("citizen_id = ?", *filter.CitizenID)
	}
	if filter.ClinicianID != nil {
		query = query.Where("clinician_id = ?", *filter.ClinicianID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tele requests: %w", err)
	}

	var rows []models.TeleRequestModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tele requests: %w", err)
	}

	requests := make([]*telemed.TeleRequest, 0, len(rows))
	for i := range rows {
		request, err := r.mapper.RequestToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	return requests, total, nil
}

func (r *TeleRequestRepository) DeleteByUser(ctx context.Context, citizenID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("citizen_id = ?", citizenID).
		Delete(&models.TeleRequestModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete tele requests: %w", err)
	}

	return nil
}

type PrescriptionRepository struct {
	db     *gorm.DB
	mapper mappers.TelemedMapper
}

func NewPrescriptionRepository(gdb *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{
		db:     gdb,
		mapper: mappers.NewTelemedMapper(),
	}
}

func (r *PrescriptionRepository) Create(ctx context.Context, prescription *telemed.Prescription) error {
	model, err := r.mapper.PrescriptionToModel(prescription)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	return prescription.SetID(model.ID)
}

func (r *PrescriptionRepository) GetBySID(ctx context.Context, sid string) (*telemed.Prescription, error) {
	var model models.PrescriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("prescription not found")
		}
		return nil, fmt.Errorf("failed to find prescription: %w", err)
	}

	return r.mapper.PrescriptionToDomain(&model)
}

func (r *PrescriptionRepository) ListByCitizen(ctx context.Context, citizenID uint) ([]*telemed.Prescription, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.PrescriptionModel
	if err := tx.
		Where("citizen_id = ?", citizenID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *PrescriptionRepository) ListByTeleRequest(ctx context.Context, teleRequestID uint) ([]*telemed.Prescription, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.PrescriptionModel
	if err := tx.
		Where("tele_request_id = ?", teleRequestID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *PrescriptionRepository) DeleteByUser(ctx context.Context, citizenID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("citizen_id = ?", citizenID).
		Delete(&models.PrescriptionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete prescriptions: %w", err)
	}

	return nil
}

func (r *PrescriptionRepository) toDomainSlice(rows []models.PrescriptionModel) ([]*telemed.Prescription, error) {
	prescriptions := make([]*telemed.Prescription, 0, len(rows))
	for i := range rows {
		prescription, err := r.mapper.PrescriptionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, prescription)
	}
	return prescriptions, nil
}
