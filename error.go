// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"errors"
	"log"

	"github.com/hooklift/oauth2/types"
)

// Internal primitive errors. Primitives return these sentinels (wrapped
// with fmt.Errorf("%w: ...", ...) for their own detail); flows convert them
// to the RFC-permitted types.OAuthError the client actually sees,
// discarding everything else.
var (
	ErrUnregisteredClient = errors.New("oauth2: unregistered client")
	ErrMismatchedRedirect = errors.New("oauth2: redirect_uri does not match a registered URI")
	ErrScopeEscalation    = errors.New("oauth2: requested scope exceeds default scope")
	ErrUnspecifiedAuth    = errors.New("oauth2: client authentication failed")
	ErrNotFound           = errors.New("oauth2: code or token not found")
	ErrExpired            = errors.New("oauth2: code or token expired")
	ErrUsed               = errors.New("oauth2: code already redeemed")
)

// redirectError builds a types.OAuthError that authorizations.go appends as
// query parameters to the bound redirect URI, per
// http://tools.ietf.org/html/rfc6749#section-4.1.2.1. state is always
// echoed, even empty, callers decide whether to omit it in the query.
func redirectError(code, desc, state string) *types.OAuthError {
	return &types.OAuthError{Code: code, Description: desc, State: state}
}

func errUnsupportedResponseType(state string) *types.OAuthError {
	return redirectError(types.ErrCodeUnsupportedResponseType,
		"response_type must be \"code\"", state)
}

func errInvalidScopeRedirect(state string) *types.OAuthError {
	return redirectError(types.ErrCodeInvalidScope,
		"requested scope exceeds the scope granted to this client", state)
}

func errAccessDenied(state string) *types.OAuthError {
	return redirectError(types.ErrCodeAccessDenied, "resource owner denied the request", state)
}

func errInvalidRequestRedirect(state, desc string) *types.OAuthError {
	return redirectError(types.ErrCodeInvalidRequest, desc, state)
}

// directError builds a types.OAuthError meant to be rendered directly
// (never via redirect) because no redirect URI could yet be trusted.
func directError(code, desc string) *types.OAuthError {
	return &types.OAuthError{Code: code, Description: desc}
}

func errClientIDMissing() *types.OAuthError {
	return directError(types.ErrCodeInvalidRequest, "client_id is required")
}

func errUnregisteredClient() *types.OAuthError {
	return directError(types.ErrCodeUnauthorizedClient, "client is not registered")
}

func errMismatchedRedirect() *types.OAuthError {
	return directError(types.ErrCodeInvalidRequest, "redirect_uri does not match a registered URI for this client")
}

func errUnauthorizedClient(desc string) *types.OAuthError {
	return directError(types.ErrCodeUnauthorizedClient, desc)
}

func errInvalidGrant(desc string) *types.OAuthError {
	return directError(types.ErrCodeInvalidGrant, desc)
}

func errInvalidScope(desc string) *types.OAuthError {
	return directError(types.ErrCodeInvalidScope, desc)
}

func errUnsupportedGrantType() *types.OAuthError {
	return directError(types.ErrCodeUnsupportedGrantType, "grant_type is not supported by this authorization server")
}

func errInvalidRequest(desc string) *types.OAuthError {
	return directError(types.ErrCodeInvalidRequest, desc)
}

// errServerError logs the real cause server-side and returns only the
// generic RFC error code to the client: primitive internal failures must
// never leak their distinguishing cause.
func errServerError(err error) *types.OAuthError {
	log.Printf("[ERROR] oauth2: internal error: %v", err)
	return directError(types.ErrCodeServerError, "the authorization server encountered an unexpected condition")
}

