package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// GustoConnector pulls employees from Gusto. The stored API key is sent as a
// bearer token on every call; the employee list is a flat JSON array with
// page/per paging.
type GustoConnector struct {
	base *baseConnector
}

// NewGustoConnector creates a Gusto connector.
func NewGustoConnector(client *http.Client) *GustoConnector {
	return &GustoConnector{base: newBaseConnector(connector.VendorGusto, client)}
}

// VendorCode returns the vendor this connector handles
func (c *GustoConnector) VendorCode() connector.VendorCode {
	return connector.VendorGusto
}

// Authenticate treats the API key as an already-valid token.
func (c *GustoConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *GustoConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employee endpoint.
func (c *GustoConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *GustoConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Gusto employee field names
func (c *GustoConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "uuid",
		"email":      "email",
		"firstName":  "first_name",
		"lastName":   "last_name",
		"department": "department",
		"position":   "job_title",
		"phone":      "phone",
		"status":     "current_employment_status",
		"hireDate":   "hire_date",
	}
}

// GetEmployees issues one page/per page of the employee list.
func (c *GustoConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per", strconv.Itoa(limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/v1/employees")+"?"+q.Encode(), c.base.bearerHeader(cfg), "gusto employees")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, -1), nil
}

var _ connector.Connector = (*GustoConnector)(nil)
