package connector

import "errors"

var (
	// Vendor/registry errors
	ErrVendorUnknown       = errors.New("connector: unknown vendor code")
	ErrVendorNotConfigured = errors.New("connector: vendor not configured")

	// Authentication errors
	ErrAuthFailed           = errors.New("connector: authentication failed")
	ErrAuthMissingAPIKey    = errors.New("connector: api key is required")
	ErrAuthMissingBasicCred = errors.New("connector: username and password are required")
	ErrAuthMissingClient    = errors.New("connector: client id and client secret are required")

	// Transport errors
	ErrTransport = errors.New("connector: transport failure")
	// ErrRequestFailed wraps vendor-side non-2xx responses
	ErrRequestFailed = errors.New("connector: vendor request failed")
	// ErrInvalidResponse wraps unparseable vendor envelopes
	ErrInvalidResponse = errors.New("connector: invalid vendor response")

	// Mapping errors
	ErrRecordMissingID = errors.New("connector: record has no employee id")
)
