package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// WorkdayConnector reads a Workday RaaS worker report. Workday integration
// users authenticate with HTTP Basic on every call; the report supports
// offset/limit paging and an updated_from filter for incremental pulls.
type WorkdayConnector struct {
	base *baseConnector
}

// NewWorkdayConnector creates a Workday connector.
func NewWorkdayConnector(client *http.Client) *WorkdayConnector {
	return &WorkdayConnector{base: newBaseConnector(connector.VendorWorkday, client)}
}

// VendorCode returns the vendor this connector handles
func (c *WorkdayConnector) VendorCode() connector.VendorCode {
	return connector.VendorWorkday
}

// Authenticate validates the integration user credentials are present.
func (c *WorkdayConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.authenticateBasic(creds)
}

// RefreshToken always fails; basic auth carries no token.
func (c *WorkdayConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.refreshUnsupported()
}

// TestConnection probes the worker report.
func (c *WorkdayConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.testViaFetch(ctx, c, cfg)
}

// Capabilities returns the connector's declared capability list
func (c *WorkdayConnector) Capabilities() []string {
	return []string{"employees", "pagination", "incremental", "test_connection"}
}

// DefaultFieldMapping returns the RaaS report column names
func (c *WorkdayConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "Worker_ID",
		"email":      "Work_Email",
		"firstName":  "First_Name",
		"lastName":   "Last_Name",
		"department": "Department",
		"position":   "Position_Title",
		"phone":      "Work_Phone",
		"status":     "Worker_Status",
		"hireDate":   "Hire_Date",
	}
}

// GetEmployees issues one paginated report fetch, filtered server-side when
// a since cursor is present.
func (c *WorkdayConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa((page-1)*limit))
	if v := sinceParam(opts.Since, "2006-01-02T15:04:05Z"); v != "" {
		q.Set("updated_from", v)
	}

	header := c.base.basicHeader(cfg, cfg.Credentials.Username, cfg.Credentials.Password)

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/workers")+"?"+q.Encode(), header, "workday workers")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "Report_Entry")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "total")), nil
}

var _ connector.Connector = (*WorkdayConnector)(nil)
