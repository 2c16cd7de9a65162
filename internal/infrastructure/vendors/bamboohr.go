package vendors

import (
	"context"
	"net/http"

	"github.com/hcm/backend/internal/domain/connector"
)

// BambooHRConnector fetches the BambooHR employee directory. BambooHR
// authenticates every call with HTTP Basic, using the API key as the
// username and a fixed placeholder password; there is no token exchange and
// the directory endpoint is not paginated.
type BambooHRConnector struct {
	base *baseConnector
}

// NewBambooHRConnector creates a BambooHR connector.
func NewBambooHRConnector(client *http.Client) *BambooHRConnector {
	return &BambooHRConnector{base: newBaseConnector(connector.VendorBambooHR, client)}
}

// VendorCode returns the vendor this connector handles
func (c *BambooHRConnector) VendorCode() connector.VendorCode {
	return connector.VendorBambooHR
}

// Authenticate treats the API key as the basic-auth username.
func (c *BambooHRConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails; BambooHR has no token lifecycle.
func (c *BambooHRConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the employee directory.
func (c *BambooHRConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *BambooHRConnector) Capabilities() []string {
	return []string{"employees", "test_connection"}
}

// DefaultFieldMapping returns the BambooHR directory field names
func (c *BambooHRConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "workEmail",
		"firstName":  "firstName",
		"lastName":   "lastName",
		"department": "department",
		"position":   "jobTitle",
		"phone":      "workPhone",
		"status":     "status",
		"hireDate":   "hireDate",
	}
}

// GetEmployees fetches the full directory in one call. The directory API has
// neither pagination nor a changed-since filter, so the since cursor is
// ignored and reconciliation absorbs the repetition.
func (c *BambooHRConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	header := c.base.basicHeader(cfg, cfg.Credentials.APIKey, "x")

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/v1/employees/directory"), header, "bamboohr directory")
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

var _ connector.Connector = (*BambooHRConnector)(nil)
