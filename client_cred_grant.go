// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"

	"github.com/hooklift/oauth2/types"
)

// clientCredGrant issues a token directly to a confidential client acting
// on its own behalf, with no resource-owner involvement.
//
// http://tools.ietf.org/html/rfc6749#section-4.4
func clientCredGrant(ctx context.Context, ep Endpoint, req Request, form types.NormalizedParameter) (*Response, error) {
	registrar := ep.Registrar()
	issuer := ep.Issuer()
	if registrar == nil || issuer == nil {
		return nil, ErrPrimitiveMissing
	}

	clientID, oerr := authenticateClient(ctx, ep, req, form, true)
	if oerr != nil {
		return ep.Response(req, directTmpl(oerr))
	}

	client, err := registrar.Client(ctx, clientID)
	if err != nil {
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	if client.Kind != types.Confidential {
		// The client credentials grant authenticates the client itself, in
		// lieu of a resource owner; a client incapable of keeping a secret
		// confidential has nothing to authenticate with.
		// http://tools.ietf.org/html/rfc6749#section-4.4.1
		return ep.Response(req, directTmpl(errUnauthorizedClient("client credentials grant requires a confidential client")))
	}

	scope, err := types.ParseScope(form.Get("scope"))
	if err != nil {
		return ep.Response(req, directTmpl(errInvalidScope(err.Error())))
	}
	if scope.Empty() {
		scope = client.DefaultScope
	} else if !client.DefaultScope.Privileges(scope) {
		return ep.Response(req, directTmpl(errInvalidScope("requested scope exceeds the scope granted to this client")))
	}

	grant := types.Grant{
		OwnerID:  clientID,
		ClientID: clientID,
		Scope:    scope,
		Until:    timeNow().Add(defaultTokenTTL),
	}

	if ext := ep.Extension(); ext != nil {
		outcome := ext.Run(ctx, PhaseAccessToken, req, &grant)
		if outcome.Reject != nil {
			return ep.Response(req, directTmpl(outcome.Reject))
		}
	}

	tok, err := issuer.Issue(ctx, grant)
	if err != nil {
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	// Client Credentials never issues a refresh token: the client can
	// always request a new one by authenticating again.
	// http://tools.ietf.org/html/rfc6749#section-4.4.3
	tok.Refresh = ""
	return ep.Response(req, tokenResponse(tok))
}
