package vendors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcm/backend/internal/domain/connector"
)

func genericConfig(serverURL string) connector.Config {
	return connector.Config{
		BaseURL:     serverURL,
		Credentials: connector.Credentials{APIKey: "sk_generic"},
		FieldMapping: map[string]string{
			"id":    "emp_id",
			"email": "mail",
		},
		Settings: connector.VendorSettings{
			EndpointPath: "/staff",
			DataPath:     "results",
		},
	}
}

func TestGenericConnector_GetEmployees(t *testing.T) {
	conn := NewGenericConnector(nil)

	t.Run("custom envelope with one malformed record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/staff", r.URL.Path)
			assert.Equal(t, "Bearer sk_generic", r.Header.Get("Authorization"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{"results":[
				{"emp_id":"E-1","mail":"one@corp.test"},
				{"mail":"two@corp.test"}
			]}`))
		}))
		defer server.Close()

		res, err := conn.GetEmployees(context.Background(), genericConfig(server.URL), connector.FetchOptions{Page: 1, Limit: 50})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, -1, res.Total, "no TotalPath configured")
		require.Len(t, res.Employees, 1)
		assert.Equal(t, "E-1", res.Employees[0].ExternalID)
		assert.Equal(t, "one@corp.test", res.Employees[0].Email)
		require.Len(t, res.RecordErrors, 1)
		assert.Contains(t, res.RecordErrors[0], "record 1")
		assert.Equal(t, 1, res.Errors)
	})

	t.Run("default endpoint and flat array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, defaultGenericEndpoint, r.URL.Path)
			w.Write([]byte(`[{"id":"1","email":"a@corp.test"}]`))
		}))
		defer server.Close()

		cfg := connector.Config{
			BaseURL:     server.URL,
			Credentials: connector.Credentials{APIKey: "sk"},
		}

		res, err := conn.GetEmployees(context.Background(), cfg, connector.FetchOptions{})
		require.NoError(t, err)
		require.Len(t, res.Employees, 1)
		assert.Equal(t, "1", res.Employees[0].ExternalID)
	})

	t.Run("configured since parameter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2024-06-01T00:00:00Z", r.URL.Query().Get("updated_after"))
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		cfg := genericConfig(server.URL)
		cfg.Settings.DataPath = ""
		cfg.Settings.SinceParam = "updated_after"
		since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		res, err := conn.GetEmployees(context.Background(), cfg, connector.FetchOptions{Since: &since})
		require.NoError(t, err)
		assert.Empty(t, res.Employees)
	})

	t.Run("basic auth scheme", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "svc", user)
			assert.Equal(t, "pw", pass)
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		cfg := connector.Config{
			BaseURL:     server.URL,
			Credentials: connector.Credentials{Username: "svc", Password: "pw"},
			Settings:    connector.VendorSettings{AuthScheme: connector.AuthSchemeBasic},
		}

		_, err := conn.GetEmployees(context.Background(), cfg, connector.FetchOptions{})
		require.NoError(t, err)
	})

	t.Run("vendor http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := conn.GetEmployees(context.Background(), genericConfig(server.URL), connector.FetchOptions{})
		assert.ErrorIs(t, err, connector.ErrRequestFailed)
	})
}

func TestGenericConnector_TestConnection(t *testing.T) {
	conn := NewGenericConnector(nil)

	t.Run("reachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[{"emp_id":"E-1","mail":"one@corp.test"}]}`))
		}))
		defer server.Close()

		res, err := conn.TestConnection(context.Background(), genericConfig(server.URL))
		require.NoError(t, err)
		assert.True(t, res.Success)
	})

	t.Run("unreachable endpoint reports failure, not error", func(t *testing.T) {
		cfg := genericConfig("http://127.0.0.1:1")
		res, err := conn.TestConnection(context.Background(), cfg)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Message)
	})
}

func TestGenericConnector_Authenticate(t *testing.T) {
	conn := NewGenericConnector(nil)

	t.Run("api key family", func(t *testing.T) {
		res, err := conn.Authenticate(context.Background(), connector.Credentials{APIKey: "sk"})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})

	t.Run("basic family", func(t *testing.T) {
		res, err := conn.Authenticate(context.Background(), connector.Credentials{Username: "u", Password: "p"})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})

	t.Run("no credentials", func(t *testing.T) {
		res, err := conn.Authenticate(context.Background(), connector.Credentials{})
		require.NoError(t, err)
		assert.False(t, res.Success)
	})
}
