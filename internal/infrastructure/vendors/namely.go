package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// NamelyConnector pulls profiles from Namely. Bearer API key, page/per_page
// paging, profiles envelope.
type NamelyConnector struct {
	base *baseConnector
}

// NewNamelyConnector creates a Namely connector.
func NewNamelyConnector(client *http.Client) *NamelyConnector {
	return &NamelyConnector{base: newBaseConnector(connector.VendorNamely, client)}
}

// VendorCode returns the vendor this connector handles
func (c *NamelyConnector) VendorCode() connector.VendorCode {
	return connector.VendorNamely
}

// Authenticate treats the API key as an already-valid token.
func (c *NamelyConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *NamelyConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the profiles endpoint.
func (c *NamelyConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *NamelyConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Namely profile field names
func (c *NamelyConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "email",
		"firstName":  "first_name",
		"lastName":   "last_name",
		"department": "reports_to.department",
		"position":   "job_title",
		"phone":      "office_phone",
		"status":     "user_status",
		"hireDate":   "start_date",
	}
}

// GetEmployees issues one page/per_page page of the profiles list.
func (c *NamelyConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/api/v1/profiles")+"?"+q.Encode(), c.base.bearerHeader(cfg), "namely profiles")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "profiles")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "meta.total_count")), nil
}

var _ connector.Connector = (*NamelyConnector)(nil)
