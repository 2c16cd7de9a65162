package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hcm/backend/internal/domain/hcm"
)

// SyncStarter starts one sync run for a config. Implemented by the hcmsync
// service.
type SyncStarter interface {
	StartSync(ctx context.Context, configID uuid.UUID, syncType hcm.SyncType, full bool) (uuid.UUID, error)
}

// EmployeeSyncTriggerConfig holds configuration for the employee sync trigger
type EmployeeSyncTriggerConfig struct {
	// CheckInterval is how often to scan for due configs
	CheckInterval time.Duration
}

// DefaultEmployeeSyncTriggerConfig returns default configuration
func DefaultEmployeeSyncTriggerConfig() EmployeeSyncTriggerConfig {
	return EmployeeSyncTriggerConfig{
		CheckInterval: time.Minute,
	}
}

// EmployeeSyncTrigger periodically scans for integration configs whose next
// scheduled run has come due and fires a SCHEDULED sync for each. One
// config's failure never blocks the rest of the scan.
type EmployeeSyncTrigger struct {
	config     EmployeeSyncTriggerConfig
	configRepo hcm.ERPConfigRepository
	starter    SyncStarter
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewEmployeeSyncTrigger creates a new employee sync trigger
func NewEmployeeSyncTrigger(
	config EmployeeSyncTriggerConfig,
	configRepo hcm.ERPConfigRepository,
	starter SyncStarter,
	logger *zap.Logger,
) *EmployeeSyncTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultEmployeeSyncTriggerConfig().CheckInterval
	}
	return &EmployeeSyncTrigger{
		config:     config,
		configRepo: configRepo,
		starter:    starter,
		logger:     logger,
	}
}

// Start starts the trigger loop
func (c *EmployeeSyncTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Employee sync trigger started",
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the trigger loop
func (c *EmployeeSyncTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Employee sync trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop periodically scans and fires due syncs
func (c *EmployeeSyncTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	// Run immediately on start
	c.checkAndFire(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndFire(ctx)
		}
	}
}

// checkAndFire scans for due configs and starts a scheduled run for each.
func (c *EmployeeSyncTrigger) checkAndFire(ctx context.Context) {
	configs, err := c.configRepo.FindDue(ctx, time.Now())
	if err != nil {
		c.logger.Error("Failed to scan for due configs", zap.Error(err))
		return
	}

	if len(configs) == 0 {
		c.logger.Debug("No configs due for sync")
		return
	}

	for _, cfg := range configs {
		logID, err := c.starter.StartSync(ctx, cfg.ID, hcm.SyncTypeScheduled, false)
		if err != nil {
			// A manual run can win the claim between the scan and the start.
			if errors.Is(err, hcm.ErrSyncAlreadyRunning) {
				c.logger.Debug("Skipping config already mid-run",
					zap.String("config_id", cfg.ID.String()),
				)
				continue
			}
			c.logger.Error("Failed to start scheduled sync",
				zap.String("config_id", cfg.ID.String()),
				zap.String("vendor", cfg.VendorCode.String()),
				zap.Error(err),
			)
			continue
		}

		c.logger.Info("Scheduled sync started",
			zap.String("config_id", cfg.ID.String()),
			zap.String("vendor", cfg.VendorCode.String()),
			zap.String("log_id", logID.String()),
		)
	}
}
