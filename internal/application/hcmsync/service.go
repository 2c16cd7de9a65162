package hcmsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
)

const (
	// defaultPageSize is the per-page fetch size for paginated vendors
	defaultPageSize = 100
	// maxPages bounds a single run against runaway vendor pagination
	maxPages = 1000
	// defaultRunTimeout bounds one full fetch/reconcile run
	defaultRunTimeout = 10 * time.Minute

	capabilityPagination = "pagination"
)

// Service orchestrates employee sync runs: it claims the config, walks the
// vendor API through the connector, reconciles the mirror and finalizes the
// run log. Runs execute in a background goroutine; StartSync returns the log
// id immediately.
type Service struct {
	configRepo   hcm.ERPConfigRepository
	employeeRepo hcm.ERPEmployeeRepository
	logRepo      hcm.ERPSyncLogRepository
	registry     connector.Registry
	logger       *zap.Logger

	pageSize   int
	runTimeout time.Duration

	wg   sync.WaitGroup
	mu   sync.Mutex
	runs map[uuid.UUID]chan struct{}
}

// ServiceOption customizes the sync orchestrator.
type ServiceOption func(*Service)

// WithPageSize overrides the per-page fetch size for paginated vendors.
func WithPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithRunTimeout overrides the deadline for one full fetch/reconcile run.
func WithRunTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.runTimeout = d
		}
	}
}

// NewService creates a sync orchestrator service.
func NewService(
	configRepo hcm.ERPConfigRepository,
	employeeRepo hcm.ERPEmployeeRepository,
	logRepo hcm.ERPSyncLogRepository,
	registry connector.Registry,
	logger *zap.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		configRepo:   configRepo,
		employeeRepo: employeeRepo,
		logRepo:      logRepo,
		registry:     registry,
		logger:       logger,
		pageSize:     defaultPageSize,
		runTimeout:   defaultRunTimeout,
		runs:         make(map[uuid.UUID]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------------------------------
// Run lifecycle
// ---------------------------------------------------------------------------

// StartSync validates the config, claims it for a run and returns the id of
// the new SYNCING log entry. The fetch/reconcile phase continues in the
// background; callers poll GetSyncStatus or block on WaitForRun.
func (s *Service) StartSync(ctx context.Context, configID uuid.UUID, syncType hcm.SyncType, full bool) (uuid.UUID, error) {
	if !syncType.IsValid() {
		return uuid.Nil, hcm.ErrInvalidSyncType
	}

	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return uuid.Nil, err
	}
	if !cfg.IsActive {
		return uuid.Nil, hcm.ErrConfigInactive
	}

	conn, err := s.registry.New(cfg.VendorCode)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.configRepo.BeginSync(ctx, configID); err != nil {
		return uuid.Nil, err
	}
	cfg.Status = hcm.ConfigStatusSyncing
	cfg.LastError = ""

	log := hcm.NewERPSyncLog(configID, syncType, full)
	if err := s.logRepo.Save(ctx, log); err != nil {
		// Release the claim so the config is not stuck SYNCING with no run.
		s.releaseFailedStart(cfg, err)
		return uuid.Nil, err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.runs[log.ID] = done
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.runs, log.ID)
			s.mu.Unlock()
			close(done)
		}()
		s.runSync(cfg, conn, log)
	}()

	s.logger.Info("Sync run started",
		zap.String("config_id", configID.String()),
		zap.String("log_id", log.ID.String()),
		zap.String("vendor", cfg.VendorCode.String()),
		zap.String("sync_type", syncType.String()),
		zap.Bool("full", full),
	)

	return log.ID, nil
}

// WaitForRun blocks until the given run reaches a terminal status. Returns
// immediately when no run with that id is in flight.
func (s *Service) WaitForRun(logID uuid.UUID) {
	s.mu.Lock()
	done, ok := s.runs[logID]
	s.mu.Unlock()
	if ok {
		<-done
	}
}

// Shutdown waits for all in-flight runs to finish.
func (s *Service) Shutdown() {
	s.wg.Wait()
}

// runSync executes the fetch/reconcile phase and finalizes the log and the
// config. It runs detached from the triggering request so an HTTP client
// disconnect never strands a config in SYNCING.
func (s *Service) runSync(cfg *hcm.ERPConfig, conn connector.Connector, log *hcm.ERPSyncLog) {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	if err := s.ensureToken(ctx, cfg, conn); err != nil {
		s.finalizeFailure(ctx, cfg, log, err)
		return
	}

	records, details, err := s.fetchAll(ctx, cfg, conn, log.Full)
	if err != nil {
		s.finalizeFailure(ctx, cfg, log, err)
		return
	}

	created, updated, reconcileErrors := s.reconcile(ctx, cfg.ID, records)
	details.RecordErrors = append(details.RecordErrors, reconcileErrors...)

	detailsJSON := ""
	if b, jsonErr := json.Marshal(details); jsonErr == nil {
		detailsJSON = string(b)
	}

	log.Complete(created+updated, created, updated, len(details.RecordErrors), detailsJSON)
	s.finalize(ctx, cfg, log)

	s.logger.Info("Sync run completed",
		zap.String("config_id", cfg.ID.String()),
		zap.String("log_id", log.ID.String()),
		zap.String("status", log.Status.String()),
		zap.Int("records_total", log.RecordsTotal),
		zap.Int("records_new", log.RecordsNew),
		zap.Int("records_updated", log.RecordsUpdated),
		zap.Int("records_errors", log.RecordsErrors),
	)
}

// ensureToken performs the OAuth client-credentials exchange for vendors that
// need one, reusing a cached unexpired token. Failed authentication is fatal
// for the run.
func (s *Service) ensureToken(ctx context.Context, cfg *hcm.ERPConfig, conn connector.Connector) error {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil
	}
	if cfg.AccessToken != "" && cfg.TokenExpiresAt != nil && cfg.TokenExpiresAt.After(time.Now().Add(time.Minute)) {
		return nil
	}

	auth, err := conn.Authenticate(ctx, cfg.Credentials())
	if err != nil {
		return err
	}
	if !auth.Success {
		return fmt.Errorf("%w: %s", connector.ErrAuthFailed, auth.ErrorMessage)
	}

	cfg.AccessToken = auth.Token
	cfg.TokenExpiresAt = auth.ExpiresAt
	return nil
}

// fetchAll walks the vendor API page by page. Vendors without the pagination
// capability are fetched in a single call. Incremental runs pass the last
// sync time as the since cursor; full runs clear it.
func (s *Service) fetchAll(ctx context.Context, cfg *hcm.ERPConfig, conn connector.Connector, full bool) ([]connector.EmployeeRecord, *syncDetails, error) {
	var since *time.Time
	if !full && cfg.LastSyncAt != nil {
		t := *cfg.LastSyncAt
		since = &t
	}

	ccfg := cfg.ConnectorConfig()
	details := &syncDetails{VendorTotal: -1}
	paginated := hasCapability(conn, capabilityPagination)

	var records []connector.EmployeeRecord
	fetched := 0
	for page := 1; page <= maxPages; page++ {
		res, err := conn.GetEmployees(ctx, ccfg, connector.FetchOptions{
			Page:  page,
			Limit: s.pageSize,
			Since: since,
		})
		if err != nil {
			return nil, nil, err
		}

		pageCount := len(res.Employees) + len(res.RecordErrors)
		records = append(records, res.Employees...)
		details.RecordErrors = append(details.RecordErrors, res.RecordErrors...)
		details.PagesFetched = page
		fetched += pageCount
		if res.Total >= 0 {
			details.VendorTotal = res.Total
		}

		if !paginated || pageCount == 0 {
			break
		}
		// Vendors that report a total may serve pages smaller than the
		// requested limit, so a short page alone is not the end of the
		// collection. Without a reported total, a short page is.
		if details.VendorTotal >= 0 {
			if fetched >= details.VendorTotal {
				break
			}
		} else if pageCount < s.pageSize {
			break
		}
	}

	return records, details, nil
}

// reconcile upserts fetched records into the mirror keyed by
// (configID, externalID). A store failure on one record is isolated so the
// rest of the batch still lands.
func (s *Service) reconcile(ctx context.Context, configID uuid.UUID, records []connector.EmployeeRecord) (created, updated int, recordErrors []string) {
	now := time.Now()
	for _, rec := range records {
		existing, err := s.employeeRepo.FindByExternalID(ctx, configID, rec.ExternalID)
		switch {
		case err == nil:
			existing.ApplyRecord(rec, now)
			if err := s.employeeRepo.Save(ctx, existing); err != nil {
				recordErrors = append(recordErrors, fmt.Sprintf("employee %s: %v", rec.ExternalID, err))
				continue
			}
			updated++
		case errors.Is(err, hcm.ErrEmployeeNotFound):
			emp := hcm.NewERPEmployee(configID, rec, now)
			if err := s.employeeRepo.Save(ctx, emp); err != nil {
				recordErrors = append(recordErrors, fmt.Sprintf("employee %s: %v", rec.ExternalID, err))
				continue
			}
			created++
		default:
			recordErrors = append(recordErrors, fmt.Sprintf("employee %s: %v", rec.ExternalID, err))
		}
	}
	return created, updated, recordErrors
}

// finalize persists the completed log and moves the config out of SYNCING.
// The mirror count and the next scheduled run are refreshed here.
func (s *Service) finalize(ctx context.Context, cfg *hcm.ERPConfig, log *hcm.ERPSyncLog) {
	if err := s.logRepo.Save(ctx, log); err != nil {
		s.logger.Error("Failed to persist sync log",
			zap.String("log_id", log.ID.String()),
			zap.Error(err),
		)
	}

	now := time.Now()
	switch log.Status {
	case hcm.SyncLogStatusSuccess:
		cfg.Status = hcm.ConfigStatusSuccess
		cfg.LastSyncAt = &now
		cfg.LastError = ""
	case hcm.SyncLogStatusPartialSuccess:
		cfg.Status = hcm.ConfigStatusPartialSuccess
		cfg.LastSyncAt = &now
		cfg.LastError = ""
	default:
		// The since cursor does not advance on a failed run.
		cfg.Status = hcm.ConfigStatusError
		cfg.LastError = log.ErrorMessage
	}

	if count, err := s.employeeRepo.CountByConfig(ctx, cfg.ID); err == nil {
		cfg.EmployeeCount = int(count)
	}

	if cfg.AutoSync && cfg.SyncFrequencyHours > 0 {
		next := now.Add(time.Duration(cfg.SyncFrequencyHours) * time.Hour)
		cfg.NextSyncAt = &next
	} else {
		cfg.NextSyncAt = nil
	}
	cfg.UpdatedAt = now

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		s.logger.Error("Failed to persist config after sync run",
			zap.String("config_id", cfg.ID.String()),
			zap.Error(err),
		)
	}
}

// finalizeFailure marks the run ERROR and releases the config claim.
func (s *Service) finalizeFailure(ctx context.Context, cfg *hcm.ERPConfig, log *hcm.ERPSyncLog, runErr error) {
	s.logger.Warn("Sync run failed",
		zap.String("config_id", cfg.ID.String()),
		zap.String("log_id", log.ID.String()),
		zap.Error(runErr),
	)
	log.Fail(runErr.Error())
	s.finalize(ctx, cfg, log)
}

// releaseFailedStart undoes the SYNCING claim when the run could not be
// recorded at all.
func (s *Service) releaseFailedStart(cfg *hcm.ERPConfig, startErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg.Status = hcm.ConfigStatusError
	cfg.LastError = startErr.Error()
	cfg.UpdatedAt = time.Now()
	if err := s.configRepo.Save(ctx, cfg); err != nil {
		s.logger.Error("Failed to release config after aborted start",
			zap.String("config_id", cfg.ID.String()),
			zap.Error(err),
		)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// GetSyncStatus returns the config's sync state together with its most recent
// run, when one exists.
func (s *Service) GetSyncStatus(ctx context.Context, configID uuid.UUID) (*SyncStatusDTO, error) {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return nil, err
	}

	status := &SyncStatusDTO{
		ConfigID:      cfg.ID,
		Status:        cfg.Status,
		LastSyncAt:    cfg.LastSyncAt,
		NextSyncAt:    cfg.NextSyncAt,
		LastError:     cfg.LastError,
		EmployeeCount: cfg.EmployeeCount,
	}

	latest, err := s.logRepo.FindLatestByConfig(ctx, configID)
	if err != nil {
		if errors.Is(err, hcm.ErrSyncLogNotFound) {
			return status, nil
		}
		return nil, err
	}
	status.LastRun = NewSyncRunDTO(latest)

	return status, nil
}

// TestConnection probes a vendor API, either for a stored config or for
// ad-hoc credentials supplied before a config is saved. Connector-level
// failures come back as an unsuccessful response, never as an error.
func (s *Service) TestConnection(ctx context.Context, req TestConnectionRequest) (*TestConnectionResponse, error) {
	var (
		vendor connector.VendorCode
		ccfg   connector.Config
	)

	if req.ConfigID != nil {
		cfg, err := s.configRepo.FindByID(ctx, *req.ConfigID)
		if err != nil {
			return nil, err
		}
		vendor = cfg.VendorCode
		ccfg = cfg.ConnectorConfig()
	} else {
		vendor = req.VendorCode
		ccfg = req.connectorConfig()
	}

	conn, err := s.registry.New(vendor)
	if err != nil {
		return nil, err
	}

	res, err := conn.TestConnection(ctx, ccfg)
	if err != nil {
		return &TestConnectionResponse{Success: false, Message: err.Error()}, nil
	}
	return &TestConnectionResponse{Success: res.Success, Message: res.Message}, nil
}

// Vendors returns the registry's static vendor metadata.
func (s *Service) Vendors() []connector.VendorInfo {
	return s.registry.Vendors()
}

func hasCapability(conn connector.Connector, capability string) bool {
	for _, c := range conn.Capabilities() {
		if c == capability {
			return true
		}
	}
	return false
}
