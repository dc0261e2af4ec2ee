// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hooklift/oauth2/types"
)

// timeNow is overridden in tests.
var timeNow = time.Now

// Authorize runs the authorization-request step of the Authorization Code
// grant:
//
//  1. resolve client_id/redirect_uri through Registrar.BoundRedirect
//  2. negotiate scope through Registrar.Negotiate
//  3. run the PhaseAuthorization extension hook
//  4. solicit resource-owner consent
//  5. mint the grant and hand it to Authorizer.Authorize
//  6. redirect back to the client with ?code=...&state=...
//
// Only a request whose client_id and redirect_uri have both been validated
// against the Registrar is ever redirected back to; a missing or mismatched
// client_id/redirect_uri renders directly.
// http://tools.ietf.org/html/rfc6749#section-4.1.2.1
func Authorize(ctx context.Context, ep Endpoint, req Request) (*Response, error) {
	registrar := ep.Registrar()
	authorizer := ep.Authorizer()
	if registrar == nil || authorizer == nil {
		return nil, ErrPrimitiveMissing
	}

	query, err := req.Query()
	if err != nil {
		return ep.Response(req, directTmpl(errInvalidRequest("malformed query string")))
	}

	state := query.Get("state")
	clientID := query.Get("client_id")
	if clientID == "" {
		return ep.Response(req, directTmpl(errClientIDMissing()))
	}

	pre, err := registrar.BoundRedirect(ctx, clientID, query.Get("redirect_uri"))
	if err != nil {
		return ep.Response(req, directTmpl(boundRedirectErr(err)))
	}
	pre.State = state

	// An unsupported response_type renders directly rather than redirecting,
	// although client_id and redirect_uri have already been validated by
	// BoundRedirect above; only the errors below redirect.
	if query.Get("response_type") != "code" {
		return ep.Response(req, directTmpl(errUnsupportedResponseType(state)))
	}

	pre, err = registrar.Negotiate(ctx, pre, query.Get("scope"))
	if err != nil {
		return ep.Response(req, redirectTmpl(pre.RedirectURI, errInvalidScopeRedirect(state)))
	}

	grant := types.Grant{
		ClientID:    pre.ClientID,
		RedirectURI: pre.RedirectURI,
		Scope:       pre.Scope,
		Extensions:  map[string]types.ExtensionValue{},
	}

	if ext := ep.Extension(); ext != nil {
		outcome := ext.Run(ctx, PhaseAuthorization, req, &grant)
		if outcome.Reject != nil {
			outcome.Reject.State = state
			return ep.Response(req, redirectTmpl(pre.RedirectURI, outcome.Reject))
		}
		for k, v := range outcome.Values {
			grant.Extensions[k] = v
		}
	}

	solicitor := ep.Solicitor()
	if solicitor == nil {
		return nil, ErrPrimitiveMissing
	}

	consent := solicitor.CheckConsent(ctx, req, pre)
	switch consent.Kind {
	case InProgress:
		return consent.Response, nil
	case Denied:
		return ep.Response(req, redirectTmpl(pre.RedirectURI, errAccessDenied(state)))
	case ConsentError:
		serr := errServerError(consent.Err)
		serr.State = state
		return ep.Response(req, redirectTmpl(pre.RedirectURI, serr))
	}

	if consent.OwnerID == "" {
		serr := errServerError(fmt.Errorf("oauth2: solicitor returned Authorized with empty OwnerID"))
		serr.State = state
		return ep.Response(req, redirectTmpl(pre.RedirectURI, serr))
	}

	ttl := ep.CodeTTL()
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	grant.OwnerID = consent.OwnerID
	grant.Until = timeNow().Add(ttl)

	code, err := authorizer.Authorize(ctx, grant)
	if err != nil {
		serr := errServerError(err)
		serr.State = state
		return ep.Response(req, redirectTmpl(pre.RedirectURI, serr))
	}

	q := url.Values{"code": []string{code}}
	if state != "" {
		q.Set("state", state)
	}
	return ep.Response(req, Template{Kind: KindRedirect, RedirectURI: pre.RedirectURI, Query: q})
}

// boundRedirectErr classifies a Registrar.BoundRedirect failure. Neither
// case has a verified redirect URI to bounce to, so both render directly.
func boundRedirectErr(err error) *types.OAuthError {
	switch {
	case errors.Is(err, ErrUnregisteredClient):
		return errUnregisteredClient()
	case errors.Is(err, ErrMismatchedRedirect):
		return errMismatchedRedirect()
	default:
		return errServerError(err)
	}
}

func directTmpl(e *types.OAuthError) Template {
	return Template{Kind: KindClientError, JSON: e}
}

func redirectTmpl(u *url.URL, e *types.OAuthError) Template {
	return Template{Kind: KindRedirect, RedirectURI: u, Query: errQuery(e)}
}

func errQuery(e *types.OAuthError) url.Values {
	q := url.Values{"error": []string{e.Code}}
	if e.Description != "" {
		q.Set("error_description", e.Description)
	}
	if e.URI != "" {
		q.Set("error_uri", e.URI)
	}
	if e.State != "" {
		q.Set("state", e.State)
	}
	return q
}
