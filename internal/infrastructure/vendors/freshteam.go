package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// FreshteamConnector pulls employees from Freshteam. Bearer API key,
// page/per_page paging, flat array response.
type FreshteamConnector struct {
	base *baseConnector
}

// NewFreshteamConnector creates a Freshteam connector.
func NewFreshteamConnector(client *http.Client) *FreshteamConnector {
	return &FreshteamConnector{base: newBaseConnector(connector.VendorFreshteam, client)}
}

// VendorCode returns the vendor this connector handles
func (c *FreshteamConnector) VendorCode() connector.VendorCode {
	return connector.VendorFreshteam
}

// Authenticate treats the API key as an already-valid token.
func (c *FreshteamConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *FreshteamConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employees endpoint.
func (c *FreshteamConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *FreshteamConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Freshteam employee field names
func (c *FreshteamConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "official_email",
		"firstName":  "first_name",
		"lastName":   "last_name",
		"department": "team.name",
		"position":   "designation",
		"phone":      "work_number",
		"status":     "employee_status",
		"hireDate":   "joining_date",
	}
}

// GetEmployees issues one page/per_page page of the employee list.
func (c *FreshteamConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/api/employees")+"?"+q.Encode(), c.base.bearerHeader(cfg), "freshteam employees")
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

var _ connector.Connector = (*FreshteamConnector)(nil)
