package hcm

import "errors"

var (
	// ErrConfigNotFound is returned when an integration config does not exist
	ErrConfigNotFound = errors.New("hcm: integration config not found")

	// ErrConfigInactive is returned when a sync is requested for a disabled config
	ErrConfigInactive = errors.New("hcm: integration config is inactive")

	// ErrSyncAlreadyRunning is returned when a run is requested while another
	// run holds the SYNCING status for the same config
	ErrSyncAlreadyRunning = errors.New("hcm: sync already running for this config")

	// ErrEmployeeNotFound is returned when a mirrored employee does not exist
	ErrEmployeeNotFound = errors.New("hcm: mirrored employee not found")

	// ErrSyncLogNotFound is returned when a sync log entry does not exist
	ErrSyncLogNotFound = errors.New("hcm: sync log not found")

	// ErrInvalidSyncType is returned for sync types outside the closed set
	ErrInvalidSyncType = errors.New("hcm: invalid sync type")
)
