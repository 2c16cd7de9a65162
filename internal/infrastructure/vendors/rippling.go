package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// RipplingConnector pulls employees from Rippling. Bearer API key,
// limit/offset paging, flat array response. Rippling reports a single
// display name; the shared mapper splits it into first/last on whitespace.
type RipplingConnector struct {
	base *baseConnector
}

// NewRipplingConnector creates a Rippling connector.
func NewRipplingConnector(client *http.Client) *RipplingConnector {
	return &RipplingConnector{base: newBaseConnector(connector.VendorRippling, client)}
}

// VendorCode returns the vendor this connector handles
func (c *RipplingConnector) VendorCode() connector.VendorCode {
	return connector.VendorRippling
}

// Authenticate treats the API key as an already-valid token.
func (c *RipplingConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *RipplingConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employees endpoint.
func (c *RipplingConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *RipplingConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Rippling employee field names. There is no
// first/last split; "name" feeds the whitespace splitter.
func (c *RipplingConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "work_email",
		"department": "department",
		"position":   "title",
		"phone":      "phone_number",
		"status":     "employment_status",
		"hireDate":   "start_date",
	}
}

// GetEmployees issues one limit/offset page of the employee list.
func (c *RipplingConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa((page-1)*limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/platform/api/employees")+"?"+q.Encode(), c.base.bearerHeader(cfg), "rippling employees")
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

var _ connector.Connector = (*RipplingConnector)(nil)
