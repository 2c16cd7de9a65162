package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// PersonioConnector pulls employees from Personio. Bearer API key,
// limit/offset paging; records nest their fields under an attributes object
// and the API supports an updated_since filter.
type PersonioConnector struct {
	base *baseConnector
}

// NewPersonioConnector creates a Personio connector.
func NewPersonioConnector(client *http.Client) *PersonioConnector {
	return &PersonioConnector{base: newBaseConnector(connector.VendorPersonio, client)}
}

// VendorCode returns the vendor this connector handles
func (c *PersonioConnector) VendorCode() connector.VendorCode {
	return connector.VendorPersonio
}

// Authenticate treats the API key as an already-valid token.
func (c *PersonioConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *PersonioConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employees endpoint.
func (c *PersonioConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *PersonioConnector) Capabilities() []string {
	return []string{"employees", "pagination", "incremental", "test_connection"}
}

// DefaultFieldMapping returns the Personio attribute paths
func (c *PersonioConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "attributes.id",
		"email":      "attributes.email",
		"firstName":  "attributes.first_name",
		"lastName":   "attributes.last_name",
		"department": "attributes.department.name",
		"position":   "attributes.position",
		"phone":      "attributes.phone",
		"status":     "attributes.status",
		"hireDate":   "attributes.hire_date",
	}
}

// GetEmployees issues one limit/offset page, filtered server-side when a
// since cursor is present.
func (c *PersonioConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa((page-1)*limit))
	if v := sinceParam(opts.Since, "2006-01-02T15:04:05Z"); v != "" {
		q.Set("updated_since", v)
	}

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/company/employees")+"?"+q.Encode(), c.base.bearerHeader(cfg), "personio employees")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "data")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "metadata.total_elements")), nil
}

var _ connector.Connector = (*PersonioConnector)(nil)
