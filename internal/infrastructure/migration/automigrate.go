package migration

import (
	"fmt"

	"gorm.io/gorm"

	"tessera/internal/infrastructure/persistence/models"
	"tessera/internal/shared/logger"
)

// AutoMigrateModels lists every model the schema carries, in dependency
// order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PlanModel{},
		&models.AssetModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionHistoryModel{},
		&models.DownloadEventModel{},
	}
}

// GormAutoMigrateStrategy lets GORM derive the schema from the model structs.
// Development only; versioned SQL scripts drive every other environment.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm-automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto-migration", "models_count", len(models))

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
