// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"errors"

	"github.com/hooklift/oauth2/types"
)

// refreshGrant mints a fresh token from a previously issued refresh token,
// optionally narrowing its scope.
//
// http://tools.ietf.org/html/rfc6749#section-6
func refreshGrant(ctx context.Context, ep Endpoint, req Request, form types.NormalizedParameter) (*Response, error) {
	issuer := ep.Issuer()
	if issuer == nil {
		return nil, ErrPrimitiveMissing
	}

	clientID, oerr := authenticateClient(ctx, ep, req, form, true)
	if oerr != nil {
		return ep.Response(req, directTmpl(oerr))
	}

	refresh := form.Get("refresh_token")
	if refresh == "" {
		return ep.Response(req, directTmpl(errInvalidRequest("refresh_token is required")))
	}

	grant, err := issuer.RecoverRefresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) {
			return ep.Response(req, directTmpl(errInvalidGrant("refresh_token is invalid, expired or revoked")))
		}
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	if grant == nil {
		return ep.Response(req, directTmpl(errInvalidGrant("refresh_token is invalid, expired or revoked")))
	}

	if grant.ClientID != clientID {
		return ep.Response(req, directTmpl(errInvalidGrant("refresh_token was not issued to this client")))
	}

	narrowed := *grant
	if requested := form.Get("scope"); requested != "" {
		reqScope, err := types.ParseScope(requested)
		if err != nil {
			return ep.Response(req, directTmpl(errInvalidScope(err.Error())))
		}
		// A refresh may only narrow scope, never escalate it.
		// http://tools.ietf.org/html/rfc6749#section-6
		if !grant.Scope.Privileges(reqScope) {
			return ep.Response(req, directTmpl(errInvalidScope("requested scope exceeds the scope originally granted")))
		}
		narrowed.Scope = reqScope
	}

	if ext := ep.Extension(); ext != nil {
		outcome := ext.Run(ctx, PhaseRefresh, req, &narrowed)
		if outcome.Reject != nil {
			return ep.Response(req, directTmpl(outcome.Reject))
		}
	}

	tok, err := issuer.Refresh(ctx, refresh, narrowed)
	if err != nil {
		return ep.Response(req, directTmpl(errServerError(err)))
	}
	return ep.Response(req, tokenResponse(tok))
}
