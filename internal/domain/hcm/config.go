package hcm

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcm/backend/internal/domain/connector"
)

// ---------------------------------------------------------------------------
// ConfigStatus represents the visible state of an integration config
// ---------------------------------------------------------------------------

// ConfigStatus is the current synchronization state of an integration config.
type ConfigStatus string

const (
	// ConfigStatusIdle indicates no sync has run yet or none is in flight
	ConfigStatusIdle ConfigStatus = "IDLE"
	// ConfigStatusSyncing indicates a sync run is in flight
	ConfigStatusSyncing ConfigStatus = "SYNCING"
	// ConfigStatusSuccess indicates the last run completed without record errors
	ConfigStatusSuccess ConfigStatus = "SUCCESS"
	// ConfigStatusPartialSuccess indicates the last run completed with record errors
	ConfigStatusPartialSuccess ConfigStatus = "PARTIAL_SUCCESS"
	// ConfigStatusError indicates the last run failed
	ConfigStatusError ConfigStatus = "ERROR"
)

// IsValid returns true if the status is valid
func (s ConfigStatus) IsValid() bool {
	switch s {
	case ConfigStatusIdle, ConfigStatusSyncing, ConfigStatusSuccess,
		ConfigStatusPartialSuccess, ConfigStatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of ConfigStatus
func (s ConfigStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// ERPConfig entity
// ---------------------------------------------------------------------------

// ERPConfig is one connected HCM/ERP instance for one company.
type ERPConfig struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	// VendorCode is one of the closed set of supported vendors
	VendorCode connector.VendorCode
	// BaseURL is the vendor API base URL
	BaseURL string
	// Credential material; only the fields relevant to the vendor's auth
	// scheme are populated
	APIKey       string
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	// AccessToken caches the last OAuth token obtained for this config
	AccessToken    string
	TokenExpiresAt *time.Time
	// FieldMapping overrides the connector's default localField->vendorField map
	FieldMapping map[string]string
	// VendorSettings is the vendor-specific sub-configuration (custom
	// endpoint paths and envelope shape for the generic connector)
	VendorSettings connector.VendorSettings
	// AutoSync enables scheduled runs every SyncFrequencyHours
	AutoSync           bool
	SyncFrequencyHours int
	Status             ConfigStatus
	LastSyncAt         *time.Time
	NextSyncAt         *time.Time
	LastError          string
	// EmployeeCount caches the record count of the last completed run
	EmployeeCount int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewERPConfig creates an integration config in its initial state.
func NewERPConfig(companyID uuid.UUID, name string, vendor connector.VendorCode, baseURL string) *ERPConfig {
	now := time.Now()
	return &ERPConfig{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		Name:               name,
		VendorCode:         vendor,
		BaseURL:            baseURL,
		Status:             ConfigStatusIdle,
		SyncFrequencyHours: 24,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Credentials returns the connector-facing credential material.
func (c *ERPConfig) Credentials() connector.Credentials {
	return connector.Credentials{
		BaseURL:      c.BaseURL,
		APIKey:       c.APIKey,
		Username:     c.Username,
		Password:     c.Password,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// ConnectorConfig builds the connector-facing view of this configuration.
func (c *ERPConfig) ConnectorConfig() connector.Config {
	return connector.Config{
		BaseURL:      c.BaseURL,
		Credentials:  c.Credentials(),
		AccessToken:  c.AccessToken,
		FieldMapping: c.FieldMapping,
		Settings:     c.VendorSettings,
	}
}

// IsDue returns true if a scheduled run should fire at the given time.
// Configs with no recorded next-sync time are due immediately.
func (c *ERPConfig) IsDue(now time.Time) bool {
	if !c.IsActive || !c.AutoSync {
		return false
	}
	if c.Status == ConfigStatusSyncing {
		return false
	}
	return c.NextSyncAt == nil || !c.NextSyncAt.After(now)
}
