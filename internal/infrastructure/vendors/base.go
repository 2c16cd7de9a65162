package vendors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hcm/backend/internal/domain/connector"
)

const (
	// defaultTimeout bounds every vendor API call
	defaultTimeout = 30 * time.Second
	// maxResponseSize is the maximum allowed vendor response size (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// hireDateLayouts are tried in order when parsing vendor hire dates.
var hireDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// baseConnector carries the HTTP plumbing, header building and structural
// field mapping shared by every vendor adapter.
type baseConnector struct {
	code       connector.VendorCode
	httpClient *http.Client
}

func newBaseConnector(code connector.VendorCode, client *http.Client) *baseConnector {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &baseConnector{code: code, httpClient: client}
}

// ---------------------------------------------------------------------------
// Default contract behavior
// ---------------------------------------------------------------------------

// authenticateAPIKey treats a bare API key as an already-valid token, for
// vendors without a real auth handshake. Expected failures come back as a
// failed AuthResult, never as an error.
func (b *baseConnector) authenticateAPIKey(creds connector.Credentials) (*connector.AuthResult, error) {
	if creds.APIKey == "" {
		return &connector.AuthResult{Success: false, ErrorMessage: connector.ErrAuthMissingAPIKey.Error()}, nil
	}
	return &connector.AuthResult{Success: true, Token: creds.APIKey}, nil
}

// authenticateBasic validates that both basic credentials are present; there
// is no separate token step for basic vendors.
func (b *baseConnector) authenticateBasic(creds connector.Credentials) (*connector.AuthResult, error) {
	if creds.Username == "" || creds.Password == "" {
		return &connector.AuthResult{Success: false, ErrorMessage: connector.ErrAuthMissingBasicCred.Error()}, nil
	}
	return &connector.AuthResult{Success: true}, nil
}

// refreshUnsupported is the default refreshToken; OAuth vendors override it.
func (b *baseConnector) refreshUnsupported() (*connector.AuthResult, error) {
	return &connector.AuthResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf("%s does not support token refresh", b.code),
	}, nil
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// doGet issues one GET against the vendor API. Network faults surface as
// transport errors; non-2xx responses are reported as
// "<context> failed: <status> <statusText>".
func (b *baseConnector) doGet(ctx context.Context, rawURL string, header http.Header, contextLabel string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", b.code, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", connector.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", connector.ErrTransport, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s failed: %d %s",
			connector.ErrRequestFailed, contextLabel, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return body, nil
}

// bearerHeader builds the Authorization header, preferring a session token
// over the raw API key.
func (b *baseConnector) bearerHeader(cfg connector.Config) http.Header {
	h := http.Header{}
	token := cfg.AccessToken
	if token == "" {
		token = cfg.Credentials.APIKey
	}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	b.applyExtraHeaders(h, cfg)
	return h
}

// basicHeader builds an HTTP Basic Authorization header.
func (b *baseConnector) basicHeader(cfg connector.Config, username, password string) http.Header {
	h := http.Header{}
	req := http.Request{Header: h}
	req.SetBasicAuth(username, password)
	b.applyExtraHeaders(h, cfg)
	return h
}

func (b *baseConnector) applyExtraHeaders(h http.Header, cfg connector.Config) {
	for k, v := range cfg.Settings.ExtraHeaders {
		h.Set(k, v)
	}
}

// joinURL concatenates the base URL and a path without doubling slashes.
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ---------------------------------------------------------------------------
// Envelope parsing
// ---------------------------------------------------------------------------

// extractList unmarshals a vendor response and walks dataPath (a dot-path)
// down to the employee list. An empty dataPath means the body is the list.
func extractList(body []byte, dataPath string) ([]map[string]any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", connector.ErrInvalidResponse, err)
	}

	node := root
	if dataPath != "" {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected object at response root", connector.ErrInvalidResponse)
		}
		node = digValue(obj, dataPath)
		if node == nil {
			return nil, fmt.Errorf("%w: no data at path %q", connector.ErrInvalidResponse, dataPath)
		}
	}

	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array of records", connector.ErrInvalidResponse)
	}

	records := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records, nil
}

// extractTotal reads an optional vendor-reported total from the envelope.
// Returns -1 when the envelope carries none.
func extractTotal(body []byte, totalPath string) int {
	if totalPath == "" {
		return -1
	}
	var root map[string]any
	if err := json.Unmarshal(body, &root); err != nil {
		return -1
	}
	if n, ok := toInt(digValue(root, totalPath)); ok {
		return n
	}
	return -1
}

// digValue walks a dot-path into nested JSON objects.
func digValue(m map[string]any, path string) any {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[part]
	}
	return cur
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Field mapping
// ---------------------------------------------------------------------------

// fieldMapping returns the configured mapping when present, otherwise the
// connector's default.
func fieldMapping(cfg connector.Config, def map[string]string) map[string]string {
	if len(cfg.FieldMapping) > 0 {
		return cfg.FieldMapping
	}
	return def
}

// mapRecord copies vendor fields into the common employee shape using a
// localField->vendorField table. Vendor field names may be dot-paths. A
// record with no resolvable employee id is a mapping error.
func (b *baseConnector) mapRecord(raw map[string]any, mapping map[string]string) (connector.EmployeeRecord, error) {
	get := func(local string) string {
		vendorField, ok := mapping[local]
		if !ok || vendorField == "" {
			return ""
		}
		return stringField(digValue(raw, vendorField))
	}

	rec := connector.EmployeeRecord{
		ExternalID: get("id"),
		Email:      get("email"),
		FirstName:  get("firstName"),
		LastName:   get("lastName"),
		Department: get("department"),
		Position:   get("position"),
		Phone:      get("phone"),
		Status:     get("status"),
	}

	if rec.ExternalID == "" {
		return rec, connector.ErrRecordMissingID
	}

	// Vendors without a first/last split map a single "name" field instead.
	if rec.FirstName == "" && rec.LastName == "" {
		if full := get("name"); full != "" {
			rec.FirstName, rec.LastName = splitName(full)
		}
	}

	if ds := get("hireDate"); ds != "" {
		if d := parseHireDate(ds); d != nil {
			rec.HireDate = d
		}
	}

	if rawJSON, err := json.Marshal(raw); err == nil {
		rec.Raw = string(rawJSON)
	}

	return rec, nil
}

// mapRecords maps a batch, isolating per-record failures so one malformed
// vendor record never aborts an otherwise-successful fetch.
func (b *baseConnector) mapRecords(raws []map[string]any, mapping map[string]string) ([]connector.EmployeeRecord, []string) {
	records := make([]connector.EmployeeRecord, 0, len(raws))
	var recordErrors []string
	for i, raw := range raws {
		rec, err := b.mapRecord(raw, mapping)
		if err != nil {
			recordErrors = append(recordErrors, fmt.Sprintf("record %d: %v", i, err))
			continue
		}
		records = append(records, rec)
	}
	return records, recordErrors
}

// fetchResult assembles the FetchResult for a successful fetch. The vendor
// total passes through untouched: -1 keeps meaning "not reported", which
// pagination relies on to tell a real total from a page count.
func fetchResult(records []connector.EmployeeRecord, recordErrors []string, vendorTotal int) *connector.FetchResult {
	return &connector.FetchResult{
		Success:      true,
		Total:        vendorTotal,
		Employees:    records,
		Errors:       len(recordErrors),
		RecordErrors: recordErrors,
	}
}

// splitName splits a full name on whitespace: first token becomes the first
// name, the remainder the last name.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func parseHireDate(s string) *time.Time {
	for _, layout := range hireDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func stringField(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// testViaFetch implements the default connection test: fetch a single
// employee page and report the outcome. Failures of any kind come back as an
// unsuccessful TestResult rather than an error.
func (b *baseConnector) testViaFetch(ctx context.Context, c connector.Connector, cfg connector.Config) (*connector.TestResult, error) {
	res, err := c.GetEmployees(ctx, cfg, connector.FetchOptions{Page: 1, Limit: 1})
	if err != nil {
		return &connector.TestResult{Success: false, Message: err.Error()}, nil
	}
	visible := res.Total
	if visible < 0 {
		visible = len(res.Employees)
	}
	return &connector.TestResult{
		Success: true,
		Message: fmt.Sprintf("connected to %s, %d employees visible", b.code, visible),
	}, nil
}

// sinceParam formats a since cursor for query parameters.
func sinceParam(since *time.Time, layout string) string {
	if since == nil {
		return ""
	}
	return since.UTC().Format(layout)
}

// pageOrDefault normalizes pagination options.
func pageOrDefault(opts connector.FetchOptions) (int, int) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return page, limit
}
