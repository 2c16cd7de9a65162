package connector

// ---------------------------------------------------------------------------
// VendorCode represents a supported HCM/ERP vendor
// ---------------------------------------------------------------------------

// VendorCode identifies one member of the closed set of supported vendors.
type VendorCode string

const (
	// VendorBambooHR represents BambooHR (HTTP Basic, API key as username)
	VendorBambooHR VendorCode = "BAMBOOHR"
	// VendorWorkday represents Workday RaaS reports (HTTP Basic)
	VendorWorkday VendorCode = "WORKDAY"
	// VendorADP represents ADP Workforce Now (OAuth2 client credentials)
	VendorADP VendorCode = "ADP"
	// VendorSuccessFactors represents SAP SuccessFactors (OAuth2 client credentials)
	VendorSuccessFactors VendorCode = "SUCCESSFACTORS"
	// VendorGusto represents Gusto (bearer API key)
	VendorGusto VendorCode = "GUSTO"
	// VendorZenefits represents Zenefits/TriNet HR (bearer API key)
	VendorZenefits VendorCode = "ZENEFITS"
	// VendorNamely represents Namely (bearer API key)
	VendorNamely VendorCode = "NAMELY"
	// VendorRippling represents Rippling (bearer API key)
	VendorRippling VendorCode = "RIPPLING"
	// VendorHiBob represents HiBob (bearer API key)
	VendorHiBob VendorCode = "HIBOB"
	// VendorPersonio represents Personio (bearer API key)
	VendorPersonio VendorCode = "PERSONIO"
	// VendorDeel represents Deel (bearer API key)
	VendorDeel VendorCode = "DEEL"
	// VendorFreshteam represents Freshteam (bearer API key)
	VendorFreshteam VendorCode = "FRESHTEAM"
	// VendorSageHR represents Sage HR (API key in X-Auth-Token header)
	VendorSageHR VendorCode = "SAGEHR"
	// VendorGeneric represents the config-driven fallback connector
	VendorGeneric VendorCode = "GENERIC"
)

// AllVendorCodes returns the closed set of supported vendor codes.
func AllVendorCodes() []VendorCode {
	return []VendorCode{
		VendorBambooHR, VendorWorkday, VendorADP, VendorSuccessFactors,
		VendorGusto, VendorZenefits, VendorNamely, VendorRippling,
		VendorHiBob, VendorPersonio, VendorDeel, VendorFreshteam,
		VendorSageHR, VendorGeneric,
	}
}

// IsValid returns true if the vendor code is a member of the closed set
func (c VendorCode) IsValid() bool {
	switch c {
	case VendorBambooHR, VendorWorkday, VendorADP, VendorSuccessFactors,
		VendorGusto, VendorZenefits, VendorNamely, VendorRippling,
		VendorHiBob, VendorPersonio, VendorDeel, VendorFreshteam,
		VendorSageHR, VendorGeneric:
		return true
	default:
		return false
	}
}

// String returns the string representation of VendorCode
func (c VendorCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// AuthScheme represents how a vendor authenticates API requests
// ---------------------------------------------------------------------------

// AuthScheme represents a vendor's authentication scheme.
type AuthScheme string

const (
	// AuthSchemeAPIKey sends the stored key as a bearer token (or vendor header)
	AuthSchemeAPIKey AuthScheme = "API_KEY"
	// AuthSchemeOAuth2 exchanges client credentials for a short-lived token
	AuthSchemeOAuth2 AuthScheme = "OAUTH2"
	// AuthSchemeBasic base64-encodes username:password on every request
	AuthSchemeBasic AuthScheme = "BASIC"
)

// IsValid returns true if the auth scheme is valid
func (s AuthScheme) IsValid() bool {
	switch s {
	case AuthSchemeAPIKey, AuthSchemeOAuth2, AuthSchemeBasic:
		return true
	default:
		return false
	}
}

// String returns the string representation of AuthScheme
func (s AuthScheme) String() string {
	return string(s)
}
