package vendors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcm/backend/internal/domain/connector"
)

// adpTokenPath is the ADP OAuth2 client-credentials token endpoint, relative
// to the configured base URL.
const adpTokenPath = "/auth/oauth/v2/token"

// ADPConnector pulls workers from ADP Workforce Now. Authentication is an
// OAuth2 client-credentials exchange producing a short-lived bearer token;
// GetEmployees assumes a valid token is already on the config.
type ADPConnector struct {
	base *baseConnector
}

// NewADPConnector creates an ADP connector.
func NewADPConnector(client *http.Client) *ADPConnector {
	return &ADPConnector{base: newBaseConnector(connector.VendorADP, client)}
}

// VendorCode returns the vendor this connector handles
func (c *ADPConnector) VendorCode() connector.VendorCode {
	return connector.VendorADP
}

// Authenticate posts the client credentials to the ADP token endpoint.
func (c *ADPConnector) Authenticate(ctx context.Context, creds connector.Credentials) (*connector.AuthResult, error) {
	return c.base.oauthAuthenticate(ctx, creds, c.tokenURL(creds))
}

// RefreshToken re-runs the client-credentials grant; ADP tokens are not
// individually refreshable.
func (c *ADPConnector) RefreshToken(ctx context.Context, creds connector.Credentials, token string) (*connector.AuthResult, error) {
	return c.base.oauthAuthenticate(ctx, creds, c.tokenURL(creds))
}

// TestConnection exchanges credentials and probes the workers endpoint.
func (c *ADPConnector) TestConnection(ctx context.Context, cfg connector.Config) (*connector.TestResult, error) {
	return c.base.oauthTestConnection(ctx, c, cfg, joinURL(cfg.BaseURL, adpTokenPath))
}

// Capabilities returns the connector's declared capability list
func (c *ADPConnector) Capabilities() []string {
	return []string{"employees", "pagination", "incremental", "oauth2", "test_connection"}
}

// DefaultFieldMapping returns the ADP worker field paths
func (c *ADPConnector) DefaultFieldMapping() map[string]string {
	return map[string]string{
		"id":         "associateOID",
		"email":      "businessCommunication.email",
		"firstName":  "person.legalName.givenName",
		"lastName":   "person.legalName.familyName",
		"department": "workAssignment.departmentName",
		"position":   "workAssignment.jobTitle",
		"phone":      "businessCommunication.phone",
		"status":     "workerStatus",
		"hireDate":   "workerDates.originalHireDate",
	}
}

// GetEmployees issues one $skip/$top page of workers. The bearer token comes
// from the config; an expired token surfaces as a vendor 401 and fails the
// run.
func (c *ADPConnector) GetEmployees(ctx context.Context, cfg connector.Config, opts connector.FetchOptions) (*connector.FetchResult, error) {
	page, limit := pageOrDefault(opts)

	q := url.Values{}
	q.Set("$top", strconv.Itoa(limit))
	q.Set("$skip", strconv.Itoa((page-1)*limit))
	if v := sinceParam(opts.Since, "2006-01-02T15:04:05Z"); v != "" {
		q.Set("$filter", "lastModifiedDate ge "+v)
	}

	body, err := c.base.doGet(ctx, joinURL(cfg.BaseURL, "/hr/v2/workers")+"?"+q.Encode(), c.base.bearerHeader(cfg), "adp workers")
	if err != nil {
		return nil, err
	}

	raws, err := extractList(body, "workers")
	if err != nil {
		return nil, err
	}

	records, recordErrors := c.base.mapRecords(raws, fieldMapping(cfg, c.DefaultFieldMapping()))
	return fetchResult(records, recordErrors, extractTotal(body, "meta.totalNumber")), nil
}

func (c *ADPConnector) tokenURL(creds connector.Credentials) string {
	return joinURL(creds.BaseURL, adpTokenPath)
}

var _ connector.Connector = (*ADPConnector)(nil)
