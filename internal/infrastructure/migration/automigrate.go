package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Used for development and SQLite pilot databases where goose scripts do
// not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{
		logger: log.Named("migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns every persistence model the schema carries.
// The casbin rule table is created by the enforcer adapter and is not
// listed here.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.UserRoleModel{},
		&models.AccessTokenModel{},
		&models.ProfileModel{},
		&models.ConsentRecordModel{},
		&models.AuditEntryModel{},
		&models.SyncEventModel{},
		&models.VitalsRecordModel{},
		&models.MoodRecordModel{},
		&models.WaterRecordModel{},
		&models.TriageSessionModel{},
		&models.NeuroscreenResultModel{},
		&models.VaccinationRecordModel{},
		&models.TherapyModuleModel{},
		&models.TherapyPackModel{},
		&models.TeleRequestModel{},
		&models.PrescriptionModel{},
		&models.ComplaintModel{},
		&models.ComplaintStatusHistoryModel{},
		&models.EvidenceModel{},
		&models.SLARuleModel{},
		&models.AnchorRecordModel{},
		&models.OutboxMessageModel{},
		&models.AnalyticsEventModel{},
		&models.AggregatedEventModel{},
		&models.MVRefreshLogModel{},
	}
}
