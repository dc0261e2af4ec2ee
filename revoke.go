// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import "context"

// Revoke implements the token revocation endpoint: an authenticated client
// asks the server to invalidate a token it holds immediately.
//
// Per https://tools.ietf.org/html/rfc7009#section-2.2, an invalid, already
// revoked or unrecognized token is not an error: the client's goal (the
// token no longer working) is already satisfied, so the response is the
// same 200 either way.
func Revoke(ctx context.Context, ep Endpoint, req Request) (*Response, error) {
	issuer := ep.Issuer()
	if issuer == nil {
		return nil, ErrPrimitiveMissing
	}

	form, err := req.Form()
	if err != nil {
		return ep.Response(req, directTmpl(errInvalidRequest("malformed form body")))
	}

	clientID, oerr := authenticateClient(ctx, ep, req, form, true)
	if oerr != nil {
		return ep.Response(req, directTmpl(oerr))
	}

	token := form.Get("token")
	if token == "" {
		return ep.Response(req, directTmpl(errInvalidRequest("token is required")))
	}

	grant, lookupErr := issuer.RecoverToken(ctx, token)
	if grant == nil && lookupErr == nil {
		grant, lookupErr = issuer.RecoverRefresh(ctx, token)
	}
	if lookupErr == nil && grant != nil && grant.ClientID != clientID {
		// Per RFC 7009 §2.1: an attempt to revoke a token owned by a
		// different client is refused with unauthorized_client, not treated
		// as a silent no-op, since that client is not entitled to mutate
		// this token at all.
		return ep.Response(req, directTmpl(errUnauthorizedClient("token was not issued to this client")))
	}

	if err := issuer.Revoke(ctx, token); err != nil {
		return ep.Response(req, directTmpl(errServerError(err)))
	}

	return ep.Response(req, Template{Kind: KindOK})
}
