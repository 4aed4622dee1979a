package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/therapy"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	defaultPackVersion   = "1.0"
	maxPackVersionLength = 20
)

// GeneratePackCommand names the module to bundle and the pack version.
type GeneratePackCommand struct {
	CallerID  uint
	CallerSID string
	ModuleSID string
	Version   string
	IP        string
	Device    string
}

// GeneratePackResult describes the stored archive. Checksum is the
// SHA-256 of the ZIP bytes; clients verify downloads against it.
type GeneratePackResult struct {
	PackSID   string `json:"pack_sid"`
	ModuleSID string `json:"module_sid"`
	Title     string `json:"title"`
	Version   string `json:"version"`
	Checksum  string `json:"checksum"`
	SizeBytes int    `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

// GeneratePackUseCase builds a module into an offline ZIP bundle, stores
// it content-addressed, and records the pack metadata. The archive is
// validated before it is stored, so a stored pack always unpacks.
type GeneratePackUseCase struct {
	modules   therapy.ModuleRepository
	packs     therapy.PackRepository
	store     therapy.PackStore
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewGeneratePackUseCase(
	modules therapy.ModuleRepository,
	packs therapy.PackRepository,
	store therapy.PackStore,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *GeneratePackUseCase {
	return &GeneratePackUseCase{
		modules:   modules,
		packs:     packs,
		store:     store,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *GeneratePackUseCase) Execute(ctx context.Context, cmd GeneratePackCommand) (*GeneratePackResult, error) {
	uc.logger.Infow("executing generate therapy pack use case",
		"caller", cmd.CallerSID, "module_sid", cmd.ModuleSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.ModuleSID == "" {
		return nil, apperrors.NewValidationError("module ID is required")
	}
	version := cmd.Version
	if version == "" {
		version = defaultPackVersion
	}
	if len(version) > maxPackVersionLength {
		return nil, apperrors.NewValidationError("version is too long")
	}

	module, err := uc.modules.GetBySID(ctx, cmd.ModuleSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load therapy module", "module_sid", cmd.ModuleSID, "error", err)
		return nil, apperrors.NewInternalError("failed to load therapy module")
	}

	archive, err := therapy.BuildArchive(module, version)
	if err != nil {
		uc.logger.Errorw("failed to build pack archive", "module_sid", cmd.ModuleSID, "error", err)
		return nil, apperrors.NewInternalError("failed to build pack archive")
	}
	if err := therapy.ValidateArchive(archive); err != nil {
		uc.logger.Errorw("built pack archive failed validation", "module_sid", cmd.ModuleSID, "error", err)
		return nil, apperrors.NewInternalError("failed to build pack archive")
	}

	objectKey, checksum, err := uc.store.Put(ctx, archive)
	if err != nil {
		uc.logger.Errorw("failed to store pack archive", "module_sid", cmd.ModuleSID, "error", err)
		return nil, apperrors.NewInternalError("failed to store pack archive")
	}

	pack, err := therapy.NewPack(module, version, checksum, objectKey)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to record pack")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.packs.Create(txCtx, pack); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "therapy.pack.generate",
			EntityType: "therapy_pack",
			EntityID:   pack.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"version":    pack.Version(),
				"checksum":   pack.Checksum(),
				"size_bytes": len(archive),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to record therapy pack", "error", err)
		return nil, apperrors.NewInternalError("failed to record therapy pack")
	}

	uc.logger.Infow("therapy pack generated",
		"pack_sid", pack.SID(), "module_sid", module.SID(), "checksum", pack.Checksum())

	return &GeneratePackResult{
		PackSID:   pack.SID(),
		ModuleSID: module.SID(),
		Title:     pack.Title(),
		Version:   pack.Version(),
		Checksum:  pack.Checksum(),
		SizeBytes: len(archive),
		CreatedAt: pack.CreatedAt().Format(time.RFC3339),
	}, nil
}
