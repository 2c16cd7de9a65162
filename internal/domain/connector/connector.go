package connector

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Credentials carries the credential material for a vendor connection.
// Only the fields relevant to the vendor's auth scheme are populated.
type Credentials struct {
	// BaseURL is the vendor API base URL; OAuth vendors derive their token
	// endpoint from it
	BaseURL string
	// APIKey is the raw API key for API_KEY vendors
	APIKey string
	// Username and Password are used by BASIC vendors
	Username string
	Password string
	// ClientID and ClientSecret are used by OAUTH2 vendors
	ClientID     string
	ClientSecret string
}

// VendorSettings carries vendor-specific sub-configuration. The generic
// connector is driven entirely by these; named connectors only honor
// ExtraHeaders.
type VendorSettings struct {
	// EndpointPath is the employee-list path relative to the base URL
	EndpointPath string
	// DataPath is a dot-path to the employee list inside the JSON envelope
	// (empty means the response body is the list itself)
	DataPath string
	// TotalPath is an optional dot-path to the vendor-reported total
	TotalPath string
	// SinceParam is the query parameter for server-side change filtering
	// (empty disables the since cursor for the generic connector)
	SinceParam string
	// AuthScheme selects how the generic connector authenticates
	AuthScheme AuthScheme
	// ExtraHeaders are sent verbatim on every request
	ExtraHeaders map[string]string
}

// Config is everything a connector needs to call a vendor API for one
// integration. The orchestrator builds it from the stored ERP configuration;
// connectors never see the persistence entity.
type Config struct {
	// BaseURL is the vendor API base URL
	BaseURL string
	// Credentials is the credential material for the configured auth scheme
	Credentials Credentials
	// AccessToken is a previously obtained session token, preferred over the
	// raw API key when present
	AccessToken string
	// FieldMapping overrides the connector's default local->vendor field map
	FieldMapping map[string]string
	// Settings is the vendor-specific sub-configuration
	Settings VendorSettings
}

// FetchOptions controls one paginated employee fetch.
type FetchOptions struct {
	// Page is the 1-indexed page number
	Page int
	// Limit is the page size
	Limit int
	// Since asks the vendor for records changed after this time, where the
	// vendor API supports server-side filtering
	Since *time.Time
}

// EmployeeRecord is the common employee shape every connector maps vendor
// records into.
type EmployeeRecord struct {
	// ExternalID is the vendor-assigned employee id; never empty
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	Department string
	Position   string
	Phone      string
	Status     string
	HireDate   *time.Time
	// Raw is the untouched vendor payload for this record, JSON-encoded
	Raw string
}

// AuthResult is the outcome of an authentication or token refresh. Expected
// auth failures are reported via Success=false, never as an error return;
// error returns are reserved for transport-level faults.
type AuthResult struct {
	Success   bool
	Token     string
	ExpiresAt *time.Time
	// ErrorMessage is set when Success is false
	ErrorMessage string
}

// TestResult is the outcome of a connection test.
type TestResult struct {
	Success bool
	Message string
}

// FetchResult is the outcome of one getEmployees call. New/Updated are
// always zero here; the orchestrator computes the real split during
// reconciliation.
type FetchResult struct {
	Success bool
	// Total is the vendor-reported size of the whole collection, or -1
	// when the vendor does not report one. Callers wanting a per-page
	// count use len(Employees).
	Total     int
	New       int
	Updated   int
	Errors    int
	Employees []EmployeeRecord
	// RecordErrors holds per-record mapping errors that did not abort the
	// batch
	RecordErrors []string
}

// ---------------------------------------------------------------------------
// Connector Port Interface
// ---------------------------------------------------------------------------

// Connector is the port interface every vendor adapter implements. It is
// defined in the domain layer; concrete vendor adapters live in the
// infrastructure layer. Callers never branch on vendor type themselves.
type Connector interface {
	// VendorCode returns the vendor this connector handles
	VendorCode() VendorCode

	// Authenticate performs the vendor's auth handshake. For vendors without
	// a real handshake a bare API key is treated as an already-valid token.
	Authenticate(ctx context.Context, creds Credentials) (*AuthResult, error)

	// RefreshToken obtains a fresh token. Vendors without token refresh
	// report a failed AuthResult.
	RefreshToken(ctx context.Context, creds Credentials, token string) (*AuthResult, error)

	// TestConnection verifies the configuration can reach the vendor API
	// without persisting any employee data
	TestConnection(ctx context.Context, cfg Config) (*TestResult, error)

	// GetEmployees authenticates as needed, issues one paginated fetch and
	// maps the vendor envelope into the common employee shape
	GetEmployees(ctx context.Context, cfg Config, opts FetchOptions) (*FetchResult, error)

	// Capabilities returns the connector's declared capability list
	Capabilities() []string

	// DefaultFieldMapping returns the localField->vendorField map used when
	// the configuration does not override it
	DefaultFieldMapping() map[string]string
}

// Registry resolves vendor codes to connector instances and exposes static
// vendor metadata. Implementations are immutable and therefore safe for
// concurrent use.
type Registry interface {
	// New returns a fresh connector for the code; ErrVendorUnknown for codes
	// outside the closed set
	New(code VendorCode) (Connector, error)

	// Vendors returns metadata for every supported vendor
	Vendors() []VendorInfo
}

// VendorInfo is the static metadata for one vendor, merged with the
// connector's reported capabilities.
type VendorInfo struct {
	Code         VendorCode `json:"code"`
	DisplayName  string     `json:"displayName"`
	Description  string     `json:"description"`
	AuthScheme   AuthScheme `json:"authScheme"`
	Capabilities []string   `json:"capabilities"`
}
