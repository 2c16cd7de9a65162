package vendors

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/hcm/backend/internal/domain/connector"
)

// vendorEntry glues a vendor's static metadata to its constructor.
type vendorEntry struct {
	displayName string
	description string
	authScheme  connector.AuthScheme
	build       func(client *http.Client) connector.Connector
}

var vendorEntries = map[connector.VendorCode]vendorEntry{
	connector.VendorBambooHR: {
		displayName: "BambooHR",
		description: "BambooHR employee directory via API-key basic auth",
		authScheme:  connector.AuthSchemeBasic,
		build:       func(c *http.Client) connector.Connector { return NewBambooHRConnector(c) },
	},
	connector.VendorWorkday: {
		displayName: "Workday",
		description: "Workday RaaS worker reports via basic auth",
		authScheme:  connector.AuthSchemeBasic,
		build:       func(c *http.Client) connector.Connector { return NewWorkdayConnector(c) },
	},
	connector.VendorADP: {
		displayName: "ADP Workforce Now",
		description: "ADP workers API via OAuth2 client credentials",
		authScheme:  connector.AuthSchemeOAuth2,
		build:       func(c *http.Client) connector.Connector { return NewADPConnector(c) },
	},
	connector.VendorSuccessFactors: {
		displayName: "SAP SuccessFactors",
		description: "SuccessFactors OData PerPerson via OAuth2 client credentials",
		authScheme:  connector.AuthSchemeOAuth2,
		build:       func(c *http.Client) connector.Connector { return NewSuccessFactorsConnector(c) },
	},
	connector.VendorGusto: {
		displayName: "Gusto",
		description: "Gusto employees API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewGustoConnector(c) },
	},
	connector.VendorZenefits: {
		displayName: "Zenefits",
		description: "Zenefits core people API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewZenefitsConnector(c) },
	},
	connector.VendorNamely: {
		displayName: "Namely",
		description: "Namely profiles API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewNamelyConnector(c) },
	},
	connector.VendorRippling: {
		displayName: "Rippling",
		description: "Rippling platform employees API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewRipplingConnector(c) },
	},
	connector.VendorHiBob: {
		displayName: "HiBob",
		description: "HiBob people API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewHiBobConnector(c) },
	},
	connector.VendorPersonio: {
		displayName: "Personio",
		description: "Personio company employees API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewPersonioConnector(c) },
	},
	connector.VendorDeel: {
		displayName: "Deel",
		description: "Deel people API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewDeelConnector(c) },
	},
	connector.VendorFreshteam: {
		displayName: "Freshteam",
		description: "Freshteam employees API via bearer token",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewFreshteamConnector(c) },
	},
	connector.VendorSageHR: {
		displayName: "Sage HR",
		description: "Sage HR employees API via X-Auth-Token API key",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewSageHRConnector(c) },
	},
	connector.VendorGeneric: {
		displayName: "Generic REST",
		description: "Config-driven connector for any REST employee API",
		authScheme:  connector.AuthSchemeAPIKey,
		build:       func(c *http.Client) connector.Connector { return NewGenericConnector(c) },
	},
}

// Registry hands out connectors by vendor code. Connectors are stateless, so
// every New call returns a fresh instance sharing one HTTP client.
type Registry struct {
	httpClient *http.Client
}

// NewRegistry creates a registry. A nil client falls back to a default with
// the standard vendor timeout.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Registry{httpClient: client}
}

// New returns the connector for code, or ErrVendorUnknown.
func (r *Registry) New(code connector.VendorCode) (connector.Connector, error) {
	entry, ok := vendorEntries[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", connector.ErrVendorUnknown, code)
	}
	return entry.build(r.httpClient), nil
}

// Vendors lists every supported vendor with its static metadata, sorted by
// code for a stable API response.
func (r *Registry) Vendors() []connector.VendorInfo {
	infos := make([]connector.VendorInfo, 0, len(vendorEntries))
	for code, entry := range vendorEntries {
		infos = append(infos, connector.VendorInfo{
			Code:         code,
			DisplayName:  entry.displayName,
			Description:  entry.description,
			AuthScheme:   entry.authScheme,
			Capabilities: entry.build(r.httpClient).Capabilities(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

var _ connector.Registry = (*Registry)(nil)
