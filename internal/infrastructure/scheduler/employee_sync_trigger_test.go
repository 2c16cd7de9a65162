package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
)

// ---------------------------------------------------------------------------
// Test Doubles
// ---------------------------------------------------------------------------

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) FindByID(ctx context.Context, id uuid.UUID) (*hcm.ERPConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hcm.ERPConfig), args.Error(1)
}

func (m *mockConfigRepo) FindDue(ctx context.Context, now time.Time) ([]hcm.ERPConfig, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hcm.ERPConfig), args.Error(1)
}

func (m *mockConfigRepo) Save(ctx context.Context, cfg *hcm.ERPConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *mockConfigRepo) BeginSync(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockConfigRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type recordingStarter struct {
	mu      sync.Mutex
	started []uuid.UUID
	err     error
}

func (s *recordingStarter) StartSync(ctx context.Context, configID uuid.UUID, syncType hcm.SyncType, full bool) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return uuid.Nil, s.err
	}
	if syncType != hcm.SyncTypeScheduled || full {
		panic("trigger must fire incremental SCHEDULED runs")
	}
	s.started = append(s.started, configID)
	return uuid.New(), nil
}

func (s *recordingStarter) startedIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.started...)
}

// ---------------------------------------------------------------------------
// Trigger Tests
// ---------------------------------------------------------------------------

func dueConfig() hcm.ERPConfig {
	cfg := hcm.NewERPConfig(uuid.New(), "due", connector.VendorGusto, "https://api.test")
	cfg.AutoSync = true
	return *cfg
}

func TestEmployeeSyncTrigger_FiresDueConfigs(t *testing.T) {
	repo := new(mockConfigRepo)
	starter := &recordingStarter{}

	first := dueConfig()
	second := dueConfig()
	repo.On("FindDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]hcm.ERPConfig{first, second}, nil)

	trigger := NewEmployeeSyncTrigger(
		EmployeeSyncTriggerConfig{CheckInterval: time.Hour},
		repo, starter, zap.NewNop(),
	)

	require.NoError(t, trigger.Start(context.Background()))
	defer trigger.Stop(context.Background())

	// The loop scans once immediately on start.
	assert.Eventually(t, func() bool {
		return len(starter.startedIDs()) == 2
	}, time.Second, 10*time.Millisecond)

	ids := starter.startedIDs()
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestEmployeeSyncTrigger_NothingDue(t *testing.T) {
	repo := new(mockConfigRepo)
	starter := &recordingStarter{}
	repo.On("FindDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]hcm.ERPConfig{}, nil)

	trigger := NewEmployeeSyncTrigger(
		EmployeeSyncTriggerConfig{CheckInterval: time.Hour},
		repo, starter, zap.NewNop(),
	)

	require.NoError(t, trigger.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, trigger.Stop(context.Background()))

	assert.Empty(t, starter.startedIDs())
	repo.AssertCalled(t, "FindDue", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestEmployeeSyncTrigger_LostClaimIsSwallowed(t *testing.T) {
	repo := new(mockConfigRepo)
	starter := &recordingStarter{err: hcm.ErrSyncAlreadyRunning}
	repo.On("FindDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]hcm.ERPConfig{dueConfig()}, nil)

	trigger := NewEmployeeSyncTrigger(
		EmployeeSyncTriggerConfig{CheckInterval: time.Hour},
		repo, starter, zap.NewNop(),
	)

	require.NoError(t, trigger.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, trigger.Stop(context.Background()))

	assert.Empty(t, starter.startedIDs())
}

func TestEmployeeSyncTrigger_StartStopIdempotent(t *testing.T) {
	repo := new(mockConfigRepo)
	repo.On("FindDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]hcm.ERPConfig{}, nil)

	trigger := NewEmployeeSyncTrigger(
		EmployeeSyncTriggerConfig{},
		repo, &recordingStarter{}, zap.NewNop(),
	)

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
	require.NoError(t, trigger.Stop(context.Background()))
}
