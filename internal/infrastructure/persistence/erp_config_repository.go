package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/infrastructure/persistence/models"
)

// GormERPConfigRepository implements ERPConfigRepository using GORM
type GormERPConfigRepository struct {
	db *gorm.DB
}

// NewGormERPConfigRepository creates a new GormERPConfigRepository
func NewGormERPConfigRepository(db *gorm.DB) *GormERPConfigRepository {
	return &GormERPConfigRepository{db: db}
}

// FindByID finds a config by its ID
func (r *GormERPConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*hcm.ERPConfig, error) {
	var model models.ERPConfigModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm.ErrConfigNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDue returns the active auto-sync configs whose next run time has
// passed. Configs mid-run are excluded so the scheduler never double-fires.
func (r *GormERPConfigRepository) FindDue(ctx context.Context, now time.Time) ([]hcm.ERPConfig, error) {
	var configModels []models.ERPConfigModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND auto_sync = ?", true, true).
		Where("status <> ?", hcm.ConfigStatusSyncing).
		Where("next_sync_at IS NULL OR next_sync_at <= ?", now).
		Order("next_sync_at ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]hcm.ERPConfig, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// Save creates or updates a config
func (r *GormERPConfigRepository) Save(ctx context.Context, cfg *hcm.ERPConfig) error {
	model := models.ERPConfigModelFromDomain(cfg)
	return r.db.WithContext(ctx).Save(model).Error
}

// BeginSync claims the config for a run with a conditional update: the flip
// to SYNCING only succeeds when no other run holds the status, so two
// concurrent triggers can never both start.
func (r *GormERPConfigRepository) BeginSync(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ERPConfigModel{}).
		Where("id = ? AND status <> ?", id, hcm.ConfigStatusSyncing).
		Updates(map[string]any{
			"status":     hcm.ConfigStatusSyncing,
			"last_error": "",
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ERPConfigModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return hcm.ErrConfigNotFound
		}
		return hcm.ErrSyncAlreadyRunning
	}
	return nil
}

// Delete deletes a config
func (r *GormERPConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ERPConfigModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return hcm.ErrConfigNotFound
	}
	return nil
}

// Ensure GormERPConfigRepository implements ERPConfigRepository
var _ hcm.ERPConfigRepository = (*GormERPConfigRepository)(nil)
