// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"errors"
	"net/url"

	"github.com/hooklift/oauth2/pkg"
	"github.com/hooklift/oauth2/types"
)

// authCodeGrant redeems an authorization code for a token.
//
// http://tools.ietf.org/html/rfc6749#section-4.1.3
func authCodeGrant(ctx context.Context, ep Endpoint, req Request, form types.NormalizedParameter) (*Response, error) {
	authorizer := ep.Authorizer()
	issuer := ep.Issuer()
	if authorizer == nil || issuer == nil {
		return nil, ErrPrimitiveMissing
	}

	clientID, oerr := authenticateClient(ctx, ep, req, form, false)
	if oerr != nil {
		return ep.Response(req, directTmpl(oerr))
	}

	code := form.Get("code")
	if code == "" {
		return ep.Response(req, directTmpl(errInvalidRequest("code is required")))
	}

	grant, err := authorizer.Extract(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) || errors.Is(err, ErrUsed) {
			return ep.Response(req, directTmpl(errInvalidGrant("authorization code is invalid, expired or already used")))
		}
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	if grant == nil {
		return ep.Response(req, directTmpl(errInvalidGrant("authorization code is invalid, expired or already used")))
	}

	// The code must have been issued to this same client: a code bound to
	// one client can never be redeemed by another, even an authenticated
	// one. http://tools.ietf.org/html/rfc6749#section-4.1.3
	if grant.ClientID != clientID {
		return ep.Response(req, directTmpl(errInvalidGrant("authorization code was not issued to this client")))
	}

	// redirect_uri is only checked here if the client actually supplies one:
	// http://tools.ietf.org/html/rfc6749#section-4.1.3 requires it only when
	// the original authorization request included one, and grant.RedirectURI
	// is always populated by BoundRedirect regardless.
	if redirectURI := form.Get("redirect_uri"); redirectURI != "" {
		got, err := url.Parse(redirectURI)
		if err != nil || !pkg.SameRedirectURI(got, grant.RedirectURI) {
			return ep.Response(req, directTmpl(errInvalidGrant("redirect_uri does not match the one used to obtain the code")))
		}
	}

	if ext := ep.Extension(); ext != nil {
		outcome := ext.Run(ctx, PhaseAccessToken, req, grant)
		if outcome.Reject != nil {
			return ep.Response(req, directTmpl(outcome.Reject))
		}
	}

	tok, err := issuer.Issue(ctx, *grant)
	if err != nil {
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	return ep.Response(req, tokenResponse(tok))
}
