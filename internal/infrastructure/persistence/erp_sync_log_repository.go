package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/infrastructure/persistence/models"
)

// GormERPSyncLogRepository implements ERPSyncLogRepository using GORM
type GormERPSyncLogRepository struct {
	db *gorm.DB
}

// NewGormERPSyncLogRepository creates a new GormERPSyncLogRepository
func NewGormERPSyncLogRepository(db *gorm.DB) *GormERPSyncLogRepository {
	return &GormERPSyncLogRepository{db: db}
}

// FindByID finds a log entry by its ID
func (r *GormERPSyncLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*hcm.ERPSyncLog, error) {
	var model models.ERPSyncLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm.ErrSyncLogNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByConfig returns the most recent log entry for a config
func (r *GormERPSyncLogRepository) FindLatestByConfig(ctx context.Context, configID uuid.UUID) (*hcm.ERPSyncLog, error) {
	var model models.ERPSyncLogModel
	if err := r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Order("started_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm.ErrSyncLogNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByConfig returns recent log entries, newest first
func (r *GormERPSyncLogRepository) ListByConfig(ctx context.Context, configID uuid.UUID, limit int) ([]hcm.ERPSyncLog, error) {
	var logModels []models.ERPSyncLogModel
	query := r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]hcm.ERPSyncLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// Save creates or updates a log entry
func (r *GormERPSyncLogRepository) Save(ctx context.Context, log *hcm.ERPSyncLog) error {
	model := models.ERPSyncLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormERPSyncLogRepository implements ERPSyncLogRepository
var _ hcm.ERPSyncLogRepository = (*GormERPSyncLogRepository)(nil)
