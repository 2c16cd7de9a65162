package vendors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcm/backend/internal/domain/connector"
)

// ---------------------------------------------------------------------------
// Field Mapping Tests
// ---------------------------------------------------------------------------

func TestBaseConnector_MapRecord(t *testing.T) {
	base := newBaseConnector(connector.VendorGeneric, nil)

	mapping := map[string]string{
		"id":         "emp_id",
		"email":      "mail",
		"firstName":  "first",
		"lastName":   "last",
		"department": "dept.name",
		"hireDate":   "start_date",
	}

	t.Run("full record with dot path", func(t *testing.T) {
		raw := map[string]any{
			"emp_id":     float64(42),
			"mail":       "jane@corp.test",
			"first":      "Jane",
			"last":       "Doe",
			"dept":       map[string]any{"name": "Engineering"},
			"start_date": "2023-04-01",
		}

		rec, err := base.mapRecord(raw, mapping)
		require.NoError(t, err)
		assert.Equal(t, "42", rec.ExternalID)
		assert.Equal(t, "jane@corp.test", rec.Email)
		assert.Equal(t, "Jane", rec.FirstName)
		assert.Equal(t, "Doe", rec.LastName)
		assert.Equal(t, "Engineering", rec.Department)
		require.NotNil(t, rec.HireDate)
		assert.Equal(t, 2023, rec.HireDate.Year())
		assert.Contains(t, rec.Raw, "jane@corp.test")
	})

	t.Run("missing id is a mapping error", func(t *testing.T) {
		raw := map[string]any{"mail": "no-id@corp.test"}
		_, err := base.mapRecord(raw, mapping)
		assert.ErrorIs(t, err, connector.ErrRecordMissingID)
	})

	t.Run("full name split when first and last absent", func(t *testing.T) {
		nameMapping := map[string]string{"id": "id", "name": "full_name"}
		raw := map[string]any{"id": "7", "full_name": "Ada Mary Lovelace"}

		rec, err := base.mapRecord(raw, nameMapping)
		require.NoError(t, err)
		assert.Equal(t, "Ada", rec.FirstName)
		assert.Equal(t, "Mary Lovelace", rec.LastName)
	})

	t.Run("unparseable hire date is dropped", func(t *testing.T) {
		raw := map[string]any{"emp_id": "9", "start_date": "sometime soon"}
		rec, err := base.mapRecord(raw, mapping)
		require.NoError(t, err)
		assert.Nil(t, rec.HireDate)
	})
}

func TestBaseConnector_MapRecords_IsolatesFailures(t *testing.T) {
	base := newBaseConnector(connector.VendorGeneric, nil)
	mapping := map[string]string{"id": "id", "email": "email"}

	raws := []map[string]any{
		{"id": "1", "email": "one@corp.test"},
		{"email": "broken@corp.test"}, // no id
		{"id": "3", "email": "three@corp.test"},
	}

	records, recordErrors := base.mapRecords(raws, mapping)
	assert.Len(t, records, 2)
	require.Len(t, recordErrors, 1)
	assert.Contains(t, recordErrors[0], "record 1")
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		wantFirst string
		wantLast  string
	}{
		{"empty", "", "", ""},
		{"single token", "Cher", "Cher", ""},
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"three tokens", "Jean Claude Damme", "Jean", "Claude Damme"},
		{"extra whitespace", "  Jane   Doe ", "Jane", "Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.full)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

// ---------------------------------------------------------------------------
// Envelope Tests
// ---------------------------------------------------------------------------

func TestExtractList(t *testing.T) {
	t.Run("flat array", func(t *testing.T) {
		raws, err := extractList([]byte(`[{"id":"1"},{"id":"2"}]`), "")
		require.NoError(t, err)
		assert.Len(t, raws, 2)
	})

	t.Run("nested dot path", func(t *testing.T) {
		body := []byte(`{"data":{"employees":[{"id":"1"}]}}`)
		raws, err := extractList(body, "data.employees")
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, "1", raws[0]["id"])
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := extractList([]byte(`{"data":{}}`), "data.employees")
		assert.ErrorIs(t, err, connector.ErrInvalidResponse)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := extractList([]byte(`{"employees":{"id":"1"}}`), "employees")
		assert.ErrorIs(t, err, connector.ErrInvalidResponse)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := extractList([]byte(`{not json`), "")
		assert.ErrorIs(t, err, connector.ErrInvalidResponse)
	})
}

func TestExtractTotal(t *testing.T) {
	body := []byte(`{"meta":{"total_count":37},"as_string":{"total":"12"}}`)

	assert.Equal(t, 37, extractTotal(body, "meta.total_count"))
	assert.Equal(t, 12, extractTotal(body, "as_string.total"))
	assert.Equal(t, -1, extractTotal(body, "meta.absent"))
	assert.Equal(t, -1, extractTotal(body, ""))
}

func TestFetchResult_Total(t *testing.T) {
	records := []connector.EmployeeRecord{{ExternalID: "1"}}

	t.Run("vendor total passes through", func(t *testing.T) {
		res := fetchResult(records, nil, 250)
		assert.Equal(t, 250, res.Total)
	})

	t.Run("unreported total stays -1", func(t *testing.T) {
		res := fetchResult(records, []string{"record 1: bad"}, -1)
		assert.True(t, res.Success)
		assert.Equal(t, -1, res.Total)
		assert.Equal(t, 1, res.Errors)
	})
}

// ---------------------------------------------------------------------------
// Helper Tests
// ---------------------------------------------------------------------------

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://api.test/v1/employees", joinURL("https://api.test/", "/v1/employees"))
	assert.Equal(t, "https://api.test/v1/employees", joinURL("https://api.test", "v1/employees"))
}

func TestPageOrDefault(t *testing.T) {
	page, limit := pageOrDefault(connector.FetchOptions{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = pageOrDefault(connector.FetchOptions{Page: 3, Limit: 9999})
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = pageOrDefault(connector.FetchOptions{Page: 2, Limit: 25})
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, limit)
}

func TestSinceParam(t *testing.T) {
	assert.Equal(t, "", sinceParam(nil, "2006-01-02"))

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", sinceParam(&ts, "2006-01-02"))
}

// ---------------------------------------------------------------------------
// Default Auth Tests
// ---------------------------------------------------------------------------

func TestBaseConnector_AuthenticateAPIKey(t *testing.T) {
	base := newBaseConnector(connector.VendorGusto, nil)

	t.Run("key present", func(t *testing.T) {
		res, err := base.authenticateAPIKey(connector.Credentials{APIKey: "sk_test"})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "sk_test", res.Token)
	})

	t.Run("key missing", func(t *testing.T) {
		res, err := base.authenticateAPIKey(connector.Credentials{})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.ErrorMessage)
	})
}

func TestBaseConnector_AuthenticateBasic(t *testing.T) {
	base := newBaseConnector(connector.VendorWorkday, nil)

	res, err := base.authenticateBasic(connector.Credentials{Username: "svc", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = base.authenticateBasic(connector.Credentials{Username: "svc"})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestBaseConnector_RefreshUnsupported(t *testing.T) {
	base := newBaseConnector(connector.VendorGusto, nil)
	res, err := base.refreshUnsupported()
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "GUSTO")
}
