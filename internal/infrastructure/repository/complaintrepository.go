package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type ComplaintRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintRepository(gdb *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{
		db:     gdb,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("complaint not found")
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("complaint not found")
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ComplaintModel{}).
		Where("id = ?", model.ID).
		Select(
			"Status", "EscalationLevel", "EscalationExhausted", "SLADeadline",
			"ResolutionNote", "FeedbackRating", "FeedbackComments", "FeedbackSubmittedAt",
			"ClosureHash", "ClosedAt", "Version", "UpdatedAt",
		).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update complaint: %w", result.Error)
	}

	return nil
}

func (r *ComplaintRepository) List(
	ctx context.Context,
	filter complaint.ListFilter,
) ([]*complaint.Complaint, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ComplaintModel{})

	if filter.SubmitterID != nil {
		query = query.Where("submitter_id = ?", *filter.SubmitterID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.EscalationLevel != nil {
		query = query.Where("escalation_level = ?", filter.EscalationLevel.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	var rows []models.ComplaintModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints, err := r.toDomainSlice(rows)
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

func (r *ComplaintRepository) ListSLABreached(ctx context.Context, now time.Time) ([]*complaint.Complaint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	activeStatuses := []string{
		complaint.StatusSubmitted.String(),
		complaint.StatusUnderReview.String(),
		complaint.StatusInProgress.String(),
		complaint.StatusEscalated.String(),
	}

	var rows []models.ComplaintModel
	if err := tx.
		Where("status IN ? AND sla_deadline < ?", activeStatuses, now).
		Order("sla_deadline ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list SLA breached complaints: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ComplaintRepository) AnonymizeByUser(ctx context.Context, submitterID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ComplaintModel{}).
		Where("submitter_id = ?", submitterID).
		Update("submitter_id", nil).Error; err != nil {
		return fmt.Errorf("failed to anonymize complaints: %w", err)
	}

	return nil
}

func (r *ComplaintRepository) toDomainSlice(rows []models.ComplaintModel) ([]*complaint.Complaint, error) {
	complaints := make([]*complaint.Complaint, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, nil
}

type SLARuleRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewSLARuleRepository(gdb *gorm.DB) *SLARuleRepository {
	return &SLARuleRepository{
		db:     gdb,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *SLARuleRepository) Create(ctx context.Context, rule *complaint.SLARule) error {
	model := r.mapper.SLARuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create SLA rule: %w", err)
	}

	return rule.SetID(model.ID)
}

func (r *SLARuleRepository) GetByCategoryAndLevel(
	ctx context.Context,
	category complaint.Category,
	level complaint.EscalationLevel,
) (*complaint.SLARule, error) {
	var model models.SLARuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("category = ? AND level = ?", category.String(), level.String()).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("SLA rule not found")
		}
		return nil, fmt.Errorf("failed to find SLA rule: %w", err)
	}

	return r.mapper.SLARuleToDomain(&model)
}

func (r *SLARuleRepository) Update(ctx context.Context, rule *complaint.SLARule) error {
	model := r.mapper.SLARuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.SLARuleModel{}).
		Where("id = ?", model.ID).
		Select("TimeLimitHours", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update SLA rule: %w", result.Error)
	}

	return nil
}

func (r *SLARuleRepository) List(ctx context.Context, category *complaint.Category) ([]*complaint.SLARule, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SLARuleModel{})

	if category != nil {
		query = query.Where("category = ?", category.String())
	}

	var rows []models.SLARuleModel
	if err := query.
		Order("category ASC, level ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list SLA rules: %w", err)
	}

	rules := make([]*complaint.SLARule, 0, len(rows))
	for i := range rows {
		rule, err := r.mapper.SLARuleToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

type ComplaintStatusHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintStatusHistoryRepository(gdb *gorm.DB) *ComplaintStatusHistoryRepository {
	return &ComplaintStatusHistoryRepository{
		db:     gdb,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ComplaintStatusHistoryRepository) Create(ctx context.Context, change *complaint.StatusChange) error {
	model := r.mapper.HistoryToModel(change)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create status change: %w", err)
	}

	return change.SetID(model.ID)
}

func (r *ComplaintStatusHistoryRepository) ListByComplaint(
	ctx context.Context,
	complaintID uint,
) ([]*complaint.StatusChange, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ComplaintStatusHistoryModel
	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", err)
	}

	changes := make([]*complaint.StatusChange, 0, len(rows))
	for i := range rows {
		change, err := r.mapper.HistoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	return changes, nil
}

type EvidenceRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewEvidenceRepository(gdb *gorm.DB) *EvidenceRepository {
	return &EvidenceRepository{
		db:     gdb,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *EvidenceRepository) Create(ctx context.Context, evidence *complaint.Evidence) error {
	model := r.mapper.EvidenceToModel(evidence)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}

	return evidence.SetID(model.ID)
}

func (r *EvidenceRepository) GetBySID(ctx context.Context, sid string) (*complaint.Evidence, error) {
	var model models.EvidenceModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("evidence not found")
		}
		return nil, fmt.Errorf("failed to find evidence: %w", err)
	}

	return r.mapper.EvidenceToDomain(&model)
}

func (r *EvidenceRepository) ListByComplaint(ctx context.Context, complaintID uint) ([]*complaint.Evidence, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.EvidenceModel
	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}

	items := make([]*complaint.Evidence, 0, len(rows))
	for i := range rows {
		item, err := r.mapper.EvidenceToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
