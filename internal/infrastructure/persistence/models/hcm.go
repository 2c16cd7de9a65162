package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
)

// ---------------------------------------------------------------------------
// ERPConfig
// ---------------------------------------------------------------------------

// ERPConfigModel is the persistence model for the ERPConfig domain entity.
type ERPConfigModel struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primary_key"`
	CompanyID          uuid.UUID            `gorm:"type:uuid;not null;index:idx_erp_config_company"`
	Name               string               `gorm:"type:varchar(255);not null"`
	VendorCode         connector.VendorCode `gorm:"type:varchar(30);not null;index:idx_erp_config_vendor"`
	BaseURL            string               `gorm:"type:varchar(500);not null"`
	APIKey             string               `gorm:"type:text"`
	Username           string               `gorm:"type:varchar(255)"`
	Password           string               `gorm:"type:text"`
	ClientID           string               `gorm:"type:varchar(255)"`
	ClientSecret       string               `gorm:"type:text"`
	AccessToken        string               `gorm:"type:text"`
	TokenExpiresAt     *time.Time
	FieldMappingJSON   string           `gorm:"type:jsonb;column:field_mapping"`
	VendorSettingsJSON string           `gorm:"type:jsonb;column:vendor_settings"`
	// No column defaults here: GORM omits zero-valued fields that carry a
	// default tag on create, so a config saved with AutoSync=false or
	// IsActive=false would come back flipped. The domain constructor owns
	// the initial values.
	AutoSync           bool             `gorm:"not null"`
	SyncFrequencyHours int              `gorm:"not null"`
	Status             hcm.ConfigStatus `gorm:"type:varchar(20);not null"`
	LastSyncAt         *time.Time
	NextSyncAt         *time.Time `gorm:"index:idx_erp_config_next_sync"`
	LastError          string     `gorm:"type:text"`
	EmployeeCount      int        `gorm:"not null"`
	IsActive           bool       `gorm:"not null"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ERPConfigModel) TableName() string {
	return "erp_configs"
}

// ToDomain converts the persistence model to a domain ERPConfig entity.
func (m *ERPConfigModel) ToDomain() *hcm.ERPConfig {
	cfg := &hcm.ERPConfig{
		ID:                 m.ID,
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		VendorCode:         m.VendorCode,
		BaseURL:            m.BaseURL,
		APIKey:             m.APIKey,
		Username:           m.Username,
		Password:           m.Password,
		ClientID:           m.ClientID,
		ClientSecret:       m.ClientSecret,
		AccessToken:        m.AccessToken,
		TokenExpiresAt:     m.TokenExpiresAt,
		AutoSync:           m.AutoSync,
		SyncFrequencyHours: m.SyncFrequencyHours,
		Status:             m.Status,
		LastSyncAt:         m.LastSyncAt,
		NextSyncAt:         m.NextSyncAt,
		LastError:          m.LastError,
		EmployeeCount:      m.EmployeeCount,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.FieldMappingJSON != "" {
		var mapping map[string]string
		if err := json.Unmarshal([]byte(m.FieldMappingJSON), &mapping); err == nil {
			cfg.FieldMapping = mapping
		}
	}
	if m.VendorSettingsJSON != "" {
		var settings connector.VendorSettings
		if err := json.Unmarshal([]byte(m.VendorSettingsJSON), &settings); err == nil {
			cfg.VendorSettings = settings
		}
	}

	return cfg
}

// FromDomain populates the persistence model from a domain ERPConfig entity.
func (m *ERPConfigModel) FromDomain(cfg *hcm.ERPConfig) {
	m.ID = cfg.ID
	m.CompanyID = cfg.CompanyID
	m.Name = cfg.Name
	m.VendorCode = cfg.VendorCode
	m.BaseURL = cfg.BaseURL
	m.APIKey = cfg.APIKey
	m.Username = cfg.Username
	m.Password = cfg.Password
	m.ClientID = cfg.ClientID
	m.ClientSecret = cfg.ClientSecret
	m.AccessToken = cfg.AccessToken
	m.TokenExpiresAt = cfg.TokenExpiresAt
	m.AutoSync = cfg.AutoSync
	m.SyncFrequencyHours = cfg.SyncFrequencyHours
	m.Status = cfg.Status
	m.LastSyncAt = cfg.LastSyncAt
	m.NextSyncAt = cfg.NextSyncAt
	m.LastError = cfg.LastError
	m.EmployeeCount = cfg.EmployeeCount
	m.IsActive = cfg.IsActive
	m.CreatedAt = cfg.CreatedAt
	m.UpdatedAt = cfg.UpdatedAt

	if len(cfg.FieldMapping) > 0 {
		if jsonBytes, err := json.Marshal(cfg.FieldMapping); err == nil {
			m.FieldMappingJSON = string(jsonBytes)
		}
	} else {
		m.FieldMappingJSON = "{}"
	}
	if jsonBytes, err := json.Marshal(cfg.VendorSettings); err == nil {
		m.VendorSettingsJSON = string(jsonBytes)
	}
}

// ERPConfigModelFromDomain creates a new persistence model from a domain ERPConfig entity.
func ERPConfigModelFromDomain(cfg *hcm.ERPConfig) *ERPConfigModel {
	m := &ERPConfigModel{}
	m.FromDomain(cfg)
	return m
}

// ---------------------------------------------------------------------------
// ERPEmployee
// ---------------------------------------------------------------------------

// ERPEmployeeModel is the persistence model for the ERPEmployee domain entity.
// (config_id, external_id) is unique; reconciliation updates rows in place.
type ERPEmployeeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ConfigID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_erp_employee_config_external,priority:1"`
	ExternalID   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_erp_employee_config_external,priority:2"`
	Email        string    `gorm:"type:varchar(255)"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Department   string    `gorm:"type:varchar(255)"`
	Position     string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(50)"`
	Status       string    `gorm:"type:varchar(50)"`
	HireDate     *time.Time
	RawDataJSON  string    `gorm:"type:jsonb;column:raw_data"`
	LastSyncedAt time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ERPEmployeeModel) TableName() string {
	return "erp_employees"
}

// ToDomain converts the persistence model to a domain ERPEmployee entity.
func (m *ERPEmployeeModel) ToDomain() *hcm.ERPEmployee {
	return &hcm.ERPEmployee{
		ID:           m.ID,
		ConfigID:     m.ConfigID,
		ExternalID:   m.ExternalID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Department:   m.Department,
		Position:     m.Position,
		Phone:        m.Phone,
		Status:       m.Status,
		HireDate:     m.HireDate,
		RawData:      m.RawDataJSON,
		LastSyncedAt: m.LastSyncedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ERPEmployee entity.
func (m *ERPEmployeeModel) FromDomain(e *hcm.ERPEmployee) {
	m.ID = e.ID
	m.ConfigID = e.ConfigID
	m.ExternalID = e.ExternalID
	m.Email = e.Email
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.Department = e.Department
	m.Position = e.Position
	m.Phone = e.Phone
	m.Status = e.Status
	m.HireDate = e.HireDate
	m.RawDataJSON = e.RawData
	m.LastSyncedAt = e.LastSyncedAt
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// ERPEmployeeModelFromDomain creates a new persistence model from a domain ERPEmployee entity.
func ERPEmployeeModelFromDomain(e *hcm.ERPEmployee) *ERPEmployeeModel {
	m := &ERPEmployeeModel{}
	m.FromDomain(e)
	return m
}

// ---------------------------------------------------------------------------
// ERPSyncLog
// ---------------------------------------------------------------------------

// ERPSyncLogModel is the persistence model for the append-only ERPSyncLog entity.
type ERPSyncLogModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key"`
	ConfigID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_erp_sync_log_config"`
	SyncType       hcm.SyncType      `gorm:"type:varchar(20);not null"`
	Full           bool              `gorm:"not null"`
	Status         hcm.SyncLogStatus `gorm:"type:varchar(20);not null"`
	StartedAt      time.Time         `gorm:"not null;index:idx_erp_sync_log_started"`
	CompletedAt    *time.Time
	DurationMillis int64     `gorm:"not null"`
	RecordsTotal   int       `gorm:"not null"`
	RecordsNew     int       `gorm:"not null"`
	RecordsUpdated int       `gorm:"not null"`
	RecordsErrors  int       `gorm:"not null"`
	ErrorMessage   string    `gorm:"type:text"`
	DetailsJSON    string    `gorm:"type:jsonb;column:details"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ERPSyncLogModel) TableName() string {
	return "erp_sync_logs"
}

// ToDomain converts the persistence model to a domain ERPSyncLog entity.
func (m *ERPSyncLogModel) ToDomain() *hcm.ERPSyncLog {
	return &hcm.ERPSyncLog{
		ID:             m.ID,
		ConfigID:       m.ConfigID,
		SyncType:       m.SyncType,
		Full:           m.Full,
		Status:         m.Status,
		StartedAt:      m.StartedAt,
		CompletedAt:    m.CompletedAt,
		DurationMillis: m.DurationMillis,
		RecordsTotal:   m.RecordsTotal,
		RecordsNew:     m.RecordsNew,
		RecordsUpdated: m.RecordsUpdated,
		RecordsErrors:  m.RecordsErrors,
		ErrorMessage:   m.ErrorMessage,
		Details:        m.DetailsJSON,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ERPSyncLog entity.
func (m *ERPSyncLogModel) FromDomain(l *hcm.ERPSyncLog) {
	m.ID = l.ID
	m.ConfigID = l.ConfigID
	m.SyncType = l.SyncType
	m.Full = l.Full
	m.Status = l.Status
	m.StartedAt = l.StartedAt
	m.CompletedAt = l.CompletedAt
	m.DurationMillis = l.DurationMillis
	m.RecordsTotal = l.RecordsTotal
	m.RecordsNew = l.RecordsNew
	m.RecordsUpdated = l.RecordsUpdated
	m.RecordsErrors = l.RecordsErrors
	m.ErrorMessage = l.ErrorMessage
	m.DetailsJSON = l.Details
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// ERPSyncLogModelFromDomain creates a new persistence model from a domain ERPSyncLog entity.
func ERPSyncLogModelFromDomain(l *hcm.ERPSyncLog) *ERPSyncLogModel {
	m := &ERPSyncLogModel{}
	m.FromDomain(l)
	return m
}
