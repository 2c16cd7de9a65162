package hcm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ERPConfigRepository persists integration configurations.
type ERPConfigRepository interface {
	// FindByID finds a config by id; ErrConfigNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*ERPConfig, error)

	// FindDue returns all active, auto-sync configs not currently SYNCING
	// whose next-sync time is null or in the past
	FindDue(ctx context.Context, now time.Time) ([]ERPConfig, error)

	// Save creates or updates a config
	Save(ctx context.Context, cfg *ERPConfig) error

	// BeginSync atomically flips the config to SYNCING and clears the last
	// error, but only if no run currently holds the status; returns
	// ErrSyncAlreadyRunning otherwise
	BeginSync(ctx context.Context, id uuid.UUID) error

	// Delete removes a config (cascading to its mirror and logs is the
	// store's responsibility)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ERPEmployeeRepository persists the mirrored employee records.
type ERPEmployeeRepository interface {
	// FindByExternalID finds the mirror row for a (config, vendor employee id)
	// pair; ErrEmployeeNotFound when the id has not been sighted yet
	FindByExternalID(ctx context.Context, configID uuid.UUID, externalID string) (*ERPEmployee, error)

	// Save creates or updates a mirrored employee
	Save(ctx context.Context, emp *ERPEmployee) error

	// CountByConfig returns the number of mirrored employees for a config
	CountByConfig(ctx context.Context, configID uuid.UUID) (int64, error)

	// ListByConfig returns a page of mirrored employees ordered by external id
	ListByConfig(ctx context.Context, configID uuid.UUID, offset, limit int) ([]ERPEmployee, error)
}

// ERPSyncLogRepository persists the append-only run history.
type ERPSyncLogRepository interface {
	// FindByID finds a log entry by id; ErrSyncLogNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*ERPSyncLog, error)

	// FindLatestByConfig returns the most recent log entry for a config;
	// ErrSyncLogNotFound when the config has no history
	FindLatestByConfig(ctx context.Context, configID uuid.UUID) (*ERPSyncLog, error)

	// ListByConfig returns recent log entries, newest first
	ListByConfig(ctx context.Context, configID uuid.UUID, limit int) ([]ERPSyncLog, error)

	// Save creates or updates a log entry
	Save(ctx context.Context, log *ERPSyncLog) error
}
