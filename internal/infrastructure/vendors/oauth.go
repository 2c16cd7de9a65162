package vendors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/hcm/backend/internal/domain/connector"
)

// oauthAuthenticate runs the OAuth2 client-credentials grant against the
// vendor's token endpoint. Rejected credentials surface as a failed
// AuthResult with an HTTP-status-derived message; network faults surface as
// transport errors.
func (b *baseConnector) oauthAuthenticate(ctx context.Context, creds connector.Credentials, tokenURL string) (*connector.AuthResult, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return &connector.AuthResult{Success: false, ErrorMessage: connector.ErrAuthMissingClient.Error()}, nil
	}

	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	tok, err := cc.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := retrieveErr.Response.StatusCode
			return &connector.AuthResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("token request failed: %d %s", status, http.StatusText(status)),
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", connector.ErrTransport, err)
	}

	result := &connector.AuthResult{Success: true, Token: tok.AccessToken}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		result.ExpiresAt = &expiry
	}
	return result, nil
}

// oauthTestConnection verifies OAuth credentials first and only then probes
// the employee endpoint with the fresh token.
func (b *baseConnector) oauthTestConnection(ctx context.Context, c connector.Connector, cfg connector.Config, tokenURL string) (*connector.TestResult, error) {
	auth, err := b.oauthAuthenticate(ctx, cfg.Credentials, tokenURL)
	if err != nil {
		return &connector.TestResult{Success: false, Message: err.Error()}, nil
	}
	if !auth.Success {
		return &connector.TestResult{Success: false, Message: auth.ErrorMessage}, nil
	}
	cfg.AccessToken = auth.Token
	return b.testViaFetch(ctx, c, cfg)
}
