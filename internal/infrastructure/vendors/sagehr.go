package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// SageHRConnector pulls employees from Sage HR. The API key travels in
// an X-Auth-Token header rather than a bearer Authorization header.
type SageHRConnector struct {
	base *baseConnector
}

// NewSageHRConnector creates a Sage HR connector.
func NewSageHRConnector(client *http.Client) *SageHRConnector {
	return &SageHRConnector{base: newBaseConnector(connector.VendorSageHR, client)}
}

// VendorCode returns the vendor this connector handles
func (c *SageHRConnector) VendorCode() connector.VendorCode {
	return connector.VendorSageHR
}

// Authenticate treats the API key as an already-valid token.
func (c *SageHRConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *SageHRConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employees endpoint.
func (c *SageHRConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *SageHRConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Sage HR employee field names
func (c *SageHRConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "email",
		"firstName":  "first_name",
		"lastName":   "last_name",
		"department": "team",
		"position":   "position",
		"phone":      "work_phone",
		"status":     "employment_status",
		"hireDate":   "employment_start_date",
	}
}

func (c *SageHRConnector) authHeader(cfg connector.Config) http.Header {
	header := http.Header{}
	token := cfg.AccessToken
	if token == "" {
		token = cfg.Credentials.APIKey
	}
	header.Set("X-Auth-Token", token)
	header.Set("Accept", "application/json")
	c.base.applyExtraHeaders(header, cfg)
	return header
}

// GetEmployees issues one page of /api/employees. Sage HR fixes its own
// page size and ignores a requested limit, so the reported data.total is
// what tells callers when the collection is exhausted.
func (c *SageHRConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, _ := pageOrDefault(opts)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/api/employees")+"?"+q.Encode(), c.authHeader(cfg), "sagehr employees")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "data.employees")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "data.total")), nil
}

var _ connector.Connector = (*SageHRConnector)(nil)
