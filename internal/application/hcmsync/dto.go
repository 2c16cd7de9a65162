package hcmsync

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
)

// SyncStatusDTO is the API-facing view of a config's sync state.
type SyncStatusDTO struct {
	ConfigID      uuid.UUID        `json:"configId"`
	Status        hcm.ConfigStatus `json:"status"`
	LastSyncAt    *time.Time       `json:"lastSyncAt,omitempty"`
	NextSyncAt    *time.Time       `json:"nextSyncAt,omitempty"`
	LastError     string           `json:"lastError,omitempty"`
	EmployeeCount int              `json:"employeeCount"`
	LastRun       *SyncRunDTO      `json:"lastRun,omitempty"`
}

// SyncRunDTO is the API-facing view of one sync log entry.
type SyncRunDTO struct {
	LogID          uuid.UUID         `json:"logId"`
	SyncType       hcm.SyncType      `json:"syncType"`
	Full           bool              `json:"full"`
	Status         hcm.SyncLogStatus `json:"status"`
	StartedAt      time.Time         `json:"startedAt"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
	DurationMillis int64             `json:"durationMillis"`
	RecordsTotal   int               `json:"recordsTotal"`
	RecordsNew     int               `json:"recordsNew"`
	RecordsUpdated int               `json:"recordsUpdated"`
	RecordsErrors  int               `json:"recordsErrors"`
	ErrorMessage   string            `json:"errorMessage,omitempty"`
}

// NewSyncRunDTO builds the run view from a log entry.
func NewSyncRunDTO(log *hcm.ERPSyncLog) *SyncRunDTO {
	return &SyncRunDTO{
		LogID:          log.ID,
		SyncType:       log.SyncType,
		Full:           log.Full,
		Status:         log.Status,
		StartedAt:      log.StartedAt,
		CompletedAt:    log.CompletedAt,
		DurationMillis: log.DurationMillis,
		RecordsTotal:   log.RecordsTotal,
		RecordsNew:     log.RecordsNew,
		RecordsUpdated: log.RecordsUpdated,
		RecordsErrors:  log.RecordsErrors,
		ErrorMessage:   log.ErrorMessage,
	}
}

// TestConnectionRequest carries either a stored config id or ad-hoc vendor
// credentials to probe before a config is saved.
type TestConnectionRequest struct {
	ConfigID     *uuid.UUID               `json:"configId,omitempty"`
	VendorCode   connector.VendorCode     `json:"vendorCode,omitempty"`
	BaseURL      string                   `json:"baseUrl,omitempty"`
	APIKey       string                   `json:"apiKey,omitempty"`
	Username     string                   `json:"username,omitempty"`
	Password     string                   `json:"password,omitempty"`
	ClientID     string                   `json:"clientId,omitempty"`
	ClientSecret string                   `json:"clientSecret,omitempty"`
	FieldMapping map[string]string        `json:"fieldMapping,omitempty"`
	Settings     connector.VendorSettings `json:"settings,omitempty"`
}

// connectorConfig builds the connector-facing view of an ad-hoc request.
func (r *TestConnectionRequest) connectorConfig() connector.Config {
	return connector.Config{
		BaseURL: r.BaseURL,
		Credentials: connector.Credentials{
			BaseURL:      r.BaseURL,
			APIKey:       r.APIKey,
			Username:     r.Username,
			Password:     r.Password,
			ClientID:     r.ClientID,
			ClientSecret: r.ClientSecret,
		},
		FieldMapping: r.FieldMapping,
		Settings:     r.Settings,
	}
}

// TestConnectionResponse reports the outcome of a connection probe.
type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// syncDetails is serialized into the log's Details blob for operators.
type syncDetails struct {
	VendorTotal  int      `json:"vendorTotal"`
	PagesFetched int      `json:"pagesFetched"`
	RecordErrors []string `json:"recordErrors,omitempty"`
}
