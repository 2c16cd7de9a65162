package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/infrastructure/persistence/models"
)

func setupERPTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ERPConfigModel{},
		&models.ERPEmployeeModel{},
		&models.ERPSyncLogModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestConfig() *hcm.ERPConfig {
	cfg := hcm.NewERPConfig(uuid.New(), "Gusto production", connector.VendorGusto, "https://api.gusto.test")
	cfg.APIKey = "sk_test"
	return cfg
}

func TestGormERPConfigRepository_SaveAndFind(t *testing.T) {
	db := setupERPTestDB(t)
	repo := NewGormERPConfigRepository(db)
	ctx := context.Background()

	t.Run("round-trips a config with mapping and settings", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.FieldMapping = map[string]string{"id": "emp_id", "email": "mail"}
		cfg.VendorSettings = connector.VendorSettings{DataPath: "results", SinceParam: "updated_after"}

		require.NoError(t, repo.Save(ctx, cfg))

		found, err := repo.FindByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.Equal(t, cfg.Name, found.Name)
		assert.Equal(t, connector.VendorGusto, found.VendorCode)
		assert.Equal(t, hcm.ConfigStatusIdle, found.Status)
		assert.Equal(t, "emp_id", found.FieldMapping["id"])
		assert.Equal(t, "results", found.VendorSettings.DataPath)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, hcm.ErrConfigNotFound)
	})

	t.Run("persists false and zero values on create", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.IsActive = false
		cfg.AutoSync = false
		cfg.SyncFrequencyHours = 0

		require.NoError(t, repo.Save(ctx, cfg))

		found, err := repo.FindByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
		assert.False(t, found.AutoSync)
		assert.Zero(t, found.SyncFrequencyHours)
	})
}

func TestGormERPConfigRepository_FindDue(t *testing.T) {
	db := setupERPTestDB(t)
	repo := NewGormERPConfigRepository(db)
	ctx := context.Background()
	now := time.Now()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := newTestConfig()
	due.AutoSync = true
	due.NextSyncAt = &past
	require.NoError(t, repo.Save(ctx, due))

	neverRan := newTestConfig()
	neverRan.AutoSync = true
	require.NoError(t, repo.Save(ctx, neverRan))

	notYet := newTestConfig()
	notYet.AutoSync = true
	notYet.NextSyncAt = &future
	require.NoError(t, repo.Save(ctx, notYet))

	manualOnly := newTestConfig()
	manualOnly.NextSyncAt = &past
	require.NoError(t, repo.Save(ctx, manualOnly))

	inactive := newTestConfig()
	inactive.AutoSync = true
	inactive.IsActive = false
	inactive.NextSyncAt = &past
	require.NoError(t, repo.Save(ctx, inactive))

	running := newTestConfig()
	running.AutoSync = true
	running.Status = hcm.ConfigStatusSyncing
	running.NextSyncAt = &past
	require.NoError(t, repo.Save(ctx, running))

	configs, err := repo.FindDue(ctx, now)
	require.NoError(t, err)

	ids := make([]uuid.UUID, len(configs))
	for i, c := range configs {
		ids[i] = c.ID
	}
	assert.Len(t, configs, 2)
	assert.Contains(t, ids, due.ID)
	assert.Contains(t, ids, neverRan.ID)
}

func TestGormERPConfigRepository_BeginSync(t *testing.T) {
	db := setupERPTestDB(t)
	repo := NewGormERPConfigRepository(db)
	ctx := context.Background()

	t.Run("claims an idle config and clears the last error", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.LastError = "previous failure"
		require.NoError(t, repo.Save(ctx, cfg))

		require.NoError(t, repo.BeginSync(ctx, cfg.ID))

		found, err := repo.FindByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.Equal(t, hcm.ConfigStatusSyncing, found.Status)
		assert.Empty(t, found.LastError)
	})

	t.Run("second claim is rejected", func(t *testing.T) {
		cfg := newTestConfig()
		require.NoError(t, repo.Save(ctx, cfg))

		require.NoError(t, repo.BeginSync(ctx, cfg.ID))
		err := repo.BeginSync(ctx, cfg.ID)
		assert.ErrorIs(t, err, hcm.ErrSyncAlreadyRunning)
	})

	t.Run("missing config", func(t *testing.T) {
		err := repo.BeginSync(ctx, uuid.New())
		assert.ErrorIs(t, err, hcm.ErrConfigNotFound)
	})
}

func TestGormERPConfigRepository_Delete(t *testing.T) {
	db := setupERPTestDB(t)
	repo := NewGormERPConfigRepository(db)
	ctx := context.Background()

	cfg := newTestConfig()
	require.NoError(t, repo.Save(ctx, cfg))

	require.NoError(t, repo.Delete(ctx, cfg.ID))
	_, err := repo.FindByID(ctx, cfg.ID)
	assert.ErrorIs(t, err, hcm.ErrConfigNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, cfg.ID), hcm.ErrConfigNotFound)
}
