// Package workspace holds the Google Workspace boundary: the stored OAuth
// credential shape and the one direct API helper (Gmail send). Everything
// else against Workspace is performed by the browser extension, not here.
package workspace

import (
	"context"

	"golang.org/x/oauth2"
)

// Credentials is the token set persisted after the OAuth callback. The field
// set mirrors what the extension and any future refresh logic need to rebuild
// a token source without re-consent.
type Credentials struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
}

// FromToken captures an exchanged OAuth token into the stored shape.
func FromToken(token *oauth2.Token, conf *oauth2.Config) Credentials {
	return Credentials{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
	}
}

// TokenSource rebuilds a refreshing token source from stored credentials.
func (c Credentials) TokenSource(ctx context.Context, conf *oauth2.Config) oauth2.TokenSource {
	token := &oauth2.Token{
		AccessToken:  c.Token,
		RefreshToken: c.RefreshToken,
	}
	return conf.TokenSource(ctx, token)
}
