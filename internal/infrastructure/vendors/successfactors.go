package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// sfTokenPath is the SuccessFactors OAuth2 token endpoint, relative to the
// configured base URL.
const sfTokenPath = "/oauth/token"

// SuccessFactorsConnector pulls person records from the SAP SuccessFactors
// OData API. Like ADP it exchanges client credentials for a short-lived
// bearer token; fetches use OData $skip/$top paging and a
// lastModifiedDateTime filter for incremental pulls.
type SuccessFactorsConnector struct {
	base *baseConnector
}

// NewSuccessFactorsConnector creates a SuccessFactors connector.
func NewSuccessFactorsConnector(client *http.Client) *SuccessFactorsConnector {
	return &SuccessFactorsConnector{base: newBaseConnector(connector.VendorSuccessFactors, client)}
}

// VendorCode returns the vendor this connector handles
func (c *SuccessFactorsConnector) VendorCode() connector.VendorCode {
	return connector.VendorSuccessFactors
}

// Authenticate posts the client credentials to the token endpoint.
func (c *SuccessFactorsConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.oauthAuthenticate(ctx, creds, joinURL(creds.BaseURL, sfTokenPath))
}

// RefreshToken re-runs the client-credentials grant.
func (c *SuccessFactorsConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.oauthAuthenticate(ctx, creds, joinURL(creds.BaseURL, sfTokenPath))
}

// TestConnection exchanges credentials and probes the person endpoint.
func (c *SuccessFactorsConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.oauthTestConnection(ctx, c, cfg, joinURL(cfg.BaseURL, sfTokenPath))
}

// Capabilities returns the connector's declared capability list
func (c *SuccessFactorsConnector) Capabilities() []string {
	return []string{"employees", "pagination", "incremental", "oauth2", "test_connection"}
}

// DefaultFieldMapping returns the OData person field names
func (c *SuccessFactorsConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "personIdExternal",
		"email":      "email",
		"firstName":  "firstName",
		"lastName":   "lastName",
		"department": "department",
		"position":   "title",
		"phone":      "businessPhone",
		"status":     "employmentStatus",
		"hireDate":   "startDate",
	}
}

// GetEmployees issues one OData page. The envelope nests the result list
// under d.results.
func (c *SuccessFactorsConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("$format", "json")
	q.Set("$top", strconv.Itoa(limit))
	q.Set("$skip", strconv.Itoa((page-1)*limit))
	if v := sinceParam(opts.Since, "2006-01-02T15:04:05"); v != "" {
		q.Set("$filter", "lastModifiedDateTime gt datetime'"+v+"'")
	}

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/odata/v2/PerPerson")+"?"+q.Encode(), c.base.bearerHeader(cfg), "successfactors persons")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "d.results")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "d.__count")), nil
}

var _ connector.Connector = (*SuccessFactorsConnector)(nil)
