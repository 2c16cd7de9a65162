package hcm

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcm/backend/internal/domain/connector"
)

// ERPEmployee is one mirrored employee record. The (ConfigID, ExternalID)
// pair is unique; every subsequent sighting of the same external id updates
// the row in place. Records are never deleted by the sync core.
type ERPEmployee struct {
	ID       uuid.UUID
	ConfigID uuid.UUID
	// ExternalID is the vendor-assigned employee id
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	Department string
	Position   string
	Phone      string
	Status     string
	HireDate   *time.Time
	// RawData is the untouched vendor payload, kept for forward
	// compatibility and debugging
	RawData      string
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewERPEmployee creates a mirrored employee from a fetched vendor record.
func NewERPEmployee(configID uuid.UUID, rec connector.EmployeeRecord, syncedAt time.Time) *ERPEmployee {
	return &ERPEmployee{
		ID:           uuid.New(),
		ConfigID:     configID,
		ExternalID:   rec.ExternalID,
		Email:        rec.Email,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Department:   rec.Department,
		Position:     rec.Position,
		Phone:        rec.Phone,
		Status:       rec.Status,
		HireDate:     rec.HireDate,
		RawData:      rec.Raw,
		LastSyncedAt: syncedAt,
		CreatedAt:    syncedAt,
		UpdatedAt:    syncedAt,
	}
}

// ApplyRecord updates the mirror in place from a fresh vendor record.
// No history is retained.
func (e *ERPEmployee) ApplyRecord(rec connector.EmployeeRecord, syncedAt time.Time) {
	e.Email = rec.Email
	e.FirstName = rec.FirstName
	e.LastName = rec.LastName
	e.Department = rec.Department
	e.Position = rec.Position
	e.Phone = rec.Phone
	e.Status = rec.Status
	e.HireDate = rec.HireDate
	e.RawData = rec.Raw
	e.LastSyncedAt = syncedAt
	e.UpdatedAt = syncedAt
}
