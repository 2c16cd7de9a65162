package vendors

import (
	"context"
	"net/http"

	"github.com/hcm/backend/internal/domain/connector"
)

// HiBobConnector pulls people from HiBob. Bearer API key; the people
// endpoint returns the full population in one employees envelope, with no
// pagination or change filter.
type HiBobConnector struct {
	base *baseConnector
}

// NewHiBobConnector creates a HiBob connector.
func NewHiBobConnector(client *http.Client) *HiBobConnector {
	return &HiBobConnector{base: newBaseConnector(connector.VendorHiBob, client)}
}

// VendorCode returns the vendor this connector handles
func (c *HiBobConnector) VendorCode() connector.VendorCode {
	return connector.VendorHiBob
}

// Authenticate treats the API key as an already-valid token.
func (c *HiBobConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *HiBobConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the people endpoint.
func (c *HiBobConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *HiBobConnector) Capabilities() []string {
	return []string{"employees", "test_connection"}
}

// DefaultFieldMapping returns the HiBob people field paths
func (c *HiBobConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "email",
		"firstName":  "firstName",
		"lastName":   "surname",
		"department": "work.department",
		"position":   "work.title",
		"phone":      "mobilePhone",
		"status":     "state",
		"hireDate":   "work.startDate",
	}
}

// GetEmployees fetches the full people list in one call.
func (c *HiBobConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/v1/people"), c.base.bearerHeader(cfg), "hibob people")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "employees")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, -1), nil
}

var _ connector.Connector = (*HiBobConnector)(nil)
