package hcm

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Sync Log Types
// ---------------------------------------------------------------------------

// SyncType records what triggered a run.
type SyncType string

const (
	// SyncTypeManual indicates the run was requested through the API
	SyncTypeManual SyncType = "MANUAL"
	// SyncTypeScheduled indicates the run was fired by the scheduler
	SyncTypeScheduled SyncType = "SCHEDULED"
)

// IsValid returns true if the sync type is valid
func (t SyncType) IsValid() bool {
	switch t {
	case SyncTypeManual, SyncTypeScheduled:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncType
func (t SyncType) String() string {
	return string(t)
}

// SyncLogStatus is the state of one orchestrated run.
type SyncLogStatus string

const (
	SyncLogStatusSyncing        SyncLogStatus = "SYNCING"
	SyncLogStatusSuccess        SyncLogStatus = "SUCCESS"
	SyncLogStatusPartialSuccess SyncLogStatus = "PARTIAL_SUCCESS"
	SyncLogStatusError          SyncLogStatus = "ERROR"
)

// String returns the string representation of SyncLogStatus
func (s SyncLogStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// ERPSyncLog entity
// ---------------------------------------------------------------------------

// ERPSyncLog is the append-only record of one orchestrated sync run.
// Immutable once completed.
type ERPSyncLog struct {
	ID       uuid.UUID
	ConfigID uuid.UUID
	SyncType SyncType
	// Full marks a run that ignored the since cursor and refetched everything
	Full           bool
	Status         SyncLogStatus
	StartedAt      time.Time
	CompletedAt    *time.Time
	DurationMillis int64
	RecordsTotal   int
	RecordsNew     int
	RecordsUpdated int
	RecordsErrors  int
	ErrorMessage   string
	// Details is a free-form JSON blob carrying the raw fetch result for
	// operators; never surfaced as user-visible status
	Details   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewERPSyncLog creates a log entry in SYNCING state for a starting run.
func NewERPSyncLog(configID uuid.UUID, syncType SyncType, full bool) *ERPSyncLog {
	now := time.Now()
	return &ERPSyncLog{
		ID:        uuid.New(),
		ConfigID:  configID,
		SyncType:  syncType,
		Full:      full,
		Status:    SyncLogStatusSyncing,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete finalizes the run with aggregate counts. Zero record errors yield
// SUCCESS, anything else PARTIAL_SUCCESS.
func (l *ERPSyncLog) Complete(total, created, updated, errors int, details string) {
	now := time.Now()
	l.RecordsTotal = total
	l.RecordsNew = created
	l.RecordsUpdated = updated
	l.RecordsErrors = errors
	l.Details = details
	l.CompletedAt = &now
	l.DurationMillis = now.Sub(l.StartedAt).Milliseconds()
	l.UpdatedAt = now
	if errors == 0 {
		l.Status = SyncLogStatusSuccess
	} else {
		l.Status = SyncLogStatusPartialSuccess
	}
}

// Fail finalizes the run as ERROR. The completion timestamp and duration are
// still recorded so a failed run is never left SYNCING.
func (l *ERPSyncLog) Fail(message string) {
	now := time.Now()
	l.Status = SyncLogStatusError
	l.ErrorMessage = message
	l.CompletedAt = &now
	l.DurationMillis = now.Sub(l.StartedAt).Milliseconds()
	l.UpdatedAt = now
}

// IsCompleted returns true once the run reached a terminal status.
func (l *ERPSyncLog) IsCompleted() bool {
	return l.CompletedAt != nil
}
