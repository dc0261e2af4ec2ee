// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package types

// OAuthError is a protocol-level error as defined by
// http://tools.ietf.org/html/rfc6749#section-4.1.2.1,
// http://tools.ietf.org/html/rfc6749#section-4.2.2.1 and
// http://tools.ietf.org/html/rfc6749#section-5.2.
//
// It carries only RFC-permitted detail: primitive-internal failures must
// never leak their distinguishing cause into Description.
type OAuthError struct {
	// Code is one of invalid_request, invalid_client, invalid_grant,
	// unauthorized_client, unsupported_grant_type, invalid_scope,
	// access_denied, unsupported_response_type, server_error, invalid_token
	// or insufficient_scope.
	Code string `json:"error"`
	// Description is a human-readable, ASCII-only hint for the client
	// developer. Optional.
	Description string `json:"error_description,omitempty"`
	// URI points to a human-readable page about the error. Optional.
	URI string `json:"error_uri,omitempty"`
	// State echoes the client's state parameter on /authorize redirects.
	// Left empty for /token JSON errors, where it has no meaning.
	State string `json:"-"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

// Well-known error codes, reused by every constructor in the oauth2 package
// so call sites never hand-type the RFC token.
const (
	ErrCodeInvalidRequest          = "invalid_request"
	ErrCodeInvalidClient           = "invalid_client"
	ErrCodeInvalidGrant            = "invalid_grant"
	ErrCodeUnauthorizedClient      = "unauthorized_client"
	ErrCodeUnsupportedGrantType    = "unsupported_grant_type"
	ErrCodeUnsupportedResponseType = "unsupported_response_type"
	ErrCodeInvalidScope            = "invalid_scope"
	ErrCodeAccessDenied            = "access_denied"
	ErrCodeServerError             = "server_error"
	ErrCodeInvalidToken            = "invalid_token"
	ErrCodeInsufficientScope       = "insufficient_scope"
	ErrCodeUnsupportedTokenType    = "unsupported_token_type"
)
