package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/infrastructure/persistence/models"
)

// GormERPEmployeeRepository implements ERPEmployeeRepository using GORM
type GormERPEmployeeRepository struct {
	db *gorm.DB
}

// NewGormERPEmployeeRepository creates a new GormERPEmployeeRepository
func NewGormERPEmployeeRepository(db *gorm.DB) *GormERPEmployeeRepository {
	return &GormERPEmployeeRepository{db: db}
}

// FindByExternalID finds the mirror row for a (config, external id) pair
func (r *GormERPEmployeeRepository) FindByExternalID(ctx context.Context, configID uuid.UUID, externalID string) (*hcm.ERPEmployee, error) {
	var model models.ERPEmployeeModel
	if err := r.db.WithContext(ctx).
		Where("config_id = ? AND external_id = ?", configID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm.ErrEmployeeNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a mirrored employee
func (r *GormERPEmployeeRepository) Save(ctx context.Context, emp *hcm.ERPEmployee) error {
	model := models.ERPEmployeeModelFromDomain(emp)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountByConfig returns the number of mirrored employees for a config
func (r *GormERPEmployeeRepository) CountByConfig(ctx context.Context, configID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ERPEmployeeModel{}).
		Where("config_id = ?", configID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByConfig returns a page of mirrored employees ordered by external id
func (r *GormERPEmployeeRepository) ListByConfig(ctx context.Context, configID uuid.UUID, offset, limit int) ([]hcm.ERPEmployee, error) {
	var employeeModels []models.ERPEmployeeModel
	query := r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Order("external_id ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&employeeModels).Error; err != nil {
		return nil, err
	}

	employees := make([]hcm.ERPEmployee, len(employeeModels))
	for i, model := range employeeModels {
		employees[i] = *model.ToDomain()
	}
	return employees, nil
}

// Ensure GormERPEmployeeRepository implements ERPEmployeeRepository
var _ hcm.ERPEmployeeRepository = (*GormERPEmployeeRepository)(nil)
