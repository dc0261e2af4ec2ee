// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"time"

	"github.com/hooklift/oauth2/types"
)

// Token dispatches a /token request to the grant named by its grant_type
// form parameter: authorization_code, refresh_token or client_credentials.
//
// http://tools.ietf.org/html/rfc6749#section-4
func Token(ctx context.Context, ep Endpoint, req Request) (*Response, error) {
	form, err := req.Form()
	if err != nil {
		return ep.Response(req, directTmpl(errInvalidRequest("malformed form body")))
	}

	grantType := form.Get("grant_type")
	if grantType == "" {
		return ep.Response(req, directTmpl(errInvalidRequest("grant_type is required")))
	}
	if !ep.GrantAllowed(grantType) {
		return ep.Response(req, directTmpl(errUnsupportedGrantType()))
	}

	switch grantType {
	case "authorization_code":
		return authCodeGrant(ctx, ep, req, form)
	case "refresh_token":
		return refreshGrant(ctx, ep, req, form)
	case "client_credentials":
		return clientCredGrant(ctx, ep, req, form)
	default:
		return ep.Response(req, directTmpl(errUnsupportedGrantType()))
	}
}

// authenticateClient resolves and verifies the requesting client, per
// http://tools.ietf.org/html/rfc6749#section-3.2.1. HTTP Basic is always
// accepted; client_id/client_secret in the request body is only accepted
// when the Endpoint opts in, since RFC 6749 marks it NOT RECOMMENDED.
//
// requireAuth only selects the error returned when the request identifies
// no client at all: unauthorized_client when true (every grant but
// authorization_code), a missing-client_id invalid_request when false. For
// every grant a bare client_id with no secret is passed on to
// Registrar.Check, which accepts it for a Public client.
func authenticateClient(ctx context.Context, ep Endpoint, req Request, form types.NormalizedParameter, requireAuth bool) (string, *types.OAuthError) {
	registrar := ep.Registrar()

	clientID, secret, ok := req.BasicAuth()
	if !ok {
		if ep.AllowClientSecretInBody() && form.Has("client_id") {
			clientID, secret = form.Get("client_id"), form.Get("client_secret")
			ok = true
		} else if form.Has("client_id") {
			clientID, secret, ok = form.Get("client_id"), "", true
		}
	}

	if !ok || clientID == "" {
		if requireAuth {
			return "", errUnauthorizedClient("client authentication is required")
		}
		return "", errClientIDMissing()
	}

	if err := registrar.Check(ctx, clientID, secret); err != nil {
		return "", errUnauthorizedClient("client authentication failed")
	}
	return clientID, nil
}

// tokenResponse builds the /token JSON body. Any grant extension value
// marked Public rides along as an extra top-level member, alongside the
// RFC-defined fields. http://tools.ietf.org/html/rfc6749#section-5.1
func tokenResponse(tok *types.IssuedToken) Template {
	body := make(map[string]any, 5+len(tok.Extensions))
	body["access_token"] = tok.Access
	body["token_type"] = tok.TokenType
	body["expires_in"] = int64(tok.Until.Sub(timeNow()).Seconds())
	if tok.Refresh != "" {
		body["refresh_token"] = tok.Refresh
	}
	if !tok.Scope.Empty() {
		body["scope"] = tok.Scope.String()
	}
	for k, v := range tok.Extensions {
		body[k] = v
	}
	return Template{Kind: KindOK, JSON: &body}
}

// defaultTokenTTL backstops the Client Credentials grant, which never
// passes through an authorization step that would otherwise set an expiry.
const defaultTokenTTL = time.Hour
