package seeds

import (
	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/config"
)

// SeedSLARules seeds the sla_rules table from the configured time budgets,
// one row per (category, escalation level) pair. Existing rows are left
// alone so officer edits survive restarts.
func SeedSLARules(db *gorm.DB, cfg *config.SLAConfig) error {
	for category, hours := range cfg.Rules {
		rules := []models.SLARuleModel{
			{Category: category, Level: "district", TimeLimitHours: hours.District},
			{Category: category, Level: "state", TimeLimitHours: hours.State},
			{Category: category, Level: "national", TimeLimitHours: hours.National},
		}

		for _, rule := range rules {
			if rule.TimeLimitHours <= 0 {
				continue
			}
			if err := db.FirstOrCreate(&rule, models.SLARuleModel{
				Category: rule.Category,
				Level:    rule.Level,
			}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
