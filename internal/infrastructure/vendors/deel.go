package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// DeelConnector pulls people from Deel. Bearer API key, limit/offset paging,
// data envelope. Deel reports a single full_name; the shared mapper splits
// it on whitespace.
type DeelConnector struct {
	base *baseConnector
}

// NewDeelConnector creates a Deel connector.
func NewDeelConnector(client *http.Client) *DeelConnector {
	return &DeelConnector{base: newBaseConnector(connector.VendorDeel, client)}
}

// VendorCode returns the vendor this connector handles
func (c *DeelConnector) VendorCode() connector.VendorCode {
	return connector.VendorDeel
}

// Authenticate treats the API key as an already-valid token.
func (c *DeelConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *DeelConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the people endpoint.
func (c *DeelConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *DeelConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Deel people field names
func (c *DeelConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"name":       "full_name",
		"email":      "work_email",
		"department": "department.name",
		"position":   "job_title",
		"phone":      "phone",
		"status":     "hiring_status",
		"hireDate":   "start_date",
	}
}

// GetEmployees issues one limit/offset page of the people list.
func (c *DeelConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa((page-1)*limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/rest/v2/people")+"?"+q.Encode(), c.base.bearerHeader(cfg), "deel people")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "data")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "total")), nil
}

var _ connector.Connector = (*DeelConnector)(nil)
