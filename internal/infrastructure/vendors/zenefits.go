package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// ZenefitsConnector pulls people from the Zenefits core API. Bearer API key;
// the people list is double-nested under data.data and the envelope reports
// a total count.
type ZenefitsConnector struct {
	base *baseConnector
}

// NewZenefitsConnector creates a Zenefits connector.
func NewZenefitsConnector(client *http.Client) *ZenefitsConnector {
	return &ZenefitsConnector{base: newBaseConnector(connector.VendorZenefits, client)}
}

// VendorCode returns the vendor this connector handles
func (c *ZenefitsConnector) VendorCode() connector.VendorCode {
	return connector.VendorZenefits
}

// Authenticate treats the API key as an already-valid token.
func (c *ZenefitsConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateAPIKey(creds)
}

// RefreshToken always fails for API-key vendors.
func (c *ZenefitsConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the people endpoint.
func (c *ZenefitsConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *ZenefitsConnector) Capabilities() []string {
	return []string{"employees", "pagination", "test_connection"}
}

// DefaultFieldMapping returns the Zenefits person field names. Department is
// a nested object, addressed with a dot-path.
func (c *ZenefitsConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "id",
		"email":      "work_email",
		"firstName":  "first_name",
		"lastName":   "last_name",
		"department": "department.name",
		"position":   "title",
		"phone":      "work_phone",
		"status":     "status",
		"hireDate":   "hire_date",
	}
}

// GetEmployees issues one page/limit page of the people list.
func (c *ZenefitsConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/core/people")+"?"+q.Encode(), c.base.bearerHeader(cfg), "zenefits people")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "data.data")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "data.total_count")), nil
}

var _ connector.Connector = (*ZenefitsConnector)(nil)
