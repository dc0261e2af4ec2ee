// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/hooklift/oauth2/types"
)

// Request is the abstract request contract every flow drives. Frontend
// adapters (e.g. frontend/simple) map their framework's request type onto
// it. A flow parses it at most once and never holds a reference to it
// across a primitive call.
type Request interface {
	// Method is the HTTP verb, e.g. "GET" or "POST".
	Method() string
	// URL is the request's absolute or path URL.
	URL() *url.URL
	// Query returns the normalized query-string parameters.
	Query() (types.NormalizedParameter, error)
	// Form returns the normalized application/x-www-form-urlencoded body
	// parameters. Implementations that see a GET request may alias Query.
	Form() (types.NormalizedParameter, error)
	// BasicAuth returns HTTP Basic client credentials, if present.
	BasicAuth() (username, password string, ok bool)
	// Header returns a single request header value.
	Header(name string) string
}

// ResponseKind selects the shape of an abstract Response.
type ResponseKind int

const (
	// KindOK is a 200 JSON body (token responses).
	KindOK ResponseKind = iota
	// KindRedirect is a 302 redirect to a client-controlled URI (authorization
	// responses and redirect-style errors).
	KindRedirect
	// KindClientError is a 400-class JSON body (direct, non-redirect errors).
	KindClientError
	// KindUnauthorized is a 401 JSON body with WWW-Authenticate.
	KindUnauthorized
	// KindForbidden is a 403 JSON body with WWW-Authenticate
	// (insufficient_scope).
	KindForbidden
	// KindServerError is a 500 JSON body for internal failures that made it
	// this far without more specific handling.
	KindServerError
)

// Template is what a flow asks the Endpoint to render; it never constructs
// the concrete Response itself.
type Template struct {
	Kind ResponseKind

	// RedirectURI is set for KindRedirect: the base URI the query values
	// are appended to.
	RedirectURI *url.URL
	// Query holds the values a KindRedirect response appends to
	// RedirectURI (code/state or error/error_description/state).
	Query url.Values

	// JSON holds the body to serialize for KindOK/KindClientError/
	// KindServerError.
	JSON interface{}

	// Challenge is the WWW-Authenticate header value for
	// KindUnauthorized/KindForbidden responses.
	Challenge string
}

// Response is the concrete, already-rendered HTTP response a flow returns
// to its caller. Endpoint.Response is the only place that builds one.
type Response struct {
	Status  int
	Header  http.Header
	Body    []byte
}

// ErrPrimitiveMissing is returned by a flow when the Endpoint does not
// supply a primitive the flow requires.
var ErrPrimitiveMissing = errors.New("oauth2: required primitive not configured on endpoint")

// Endpoint composes the primitives and response-construction policy a flow
// needs. It is the single place implementation-specific response
// construction lives; flows only ever ask for a Template.
//
// A primitive accessor may return nil to mean "not configured" — flows
// reject at the start of execution with ErrPrimitiveMissing rather than
// panicking on a nil primitive deep inside a call chain.
type Endpoint interface {
	Registrar() Registrar
	Authorizer() Authorizer
	Issuer() Issuer

	// Scopes is the allow-list of scope alternatives a protected resource
	// requires: the Resource flow succeeds if the grant is privileged to
	// ANY one of them.
	Scopes() []types.Scopes
	Solicitor() OwnerSolicitor
	Extension() Extension

	// CodeTTL is the lifetime of a freshly minted authorization code.
	CodeTTL() time.Duration

	// AllowClientSecretInBody opts into RFC 6749 §2.3.1's NOT RECOMMENDED
	// client_id+client_secret body authentication at /token, in addition to
	// HTTP Basic. Disabled by default.
	AllowClientSecretInBody() bool

	// GrantAllowed reports whether grantType may be used at /token. An
	// Endpoint that never restricts grants allows every one Token
	// implements.
	GrantAllowed(grantType string) bool

	// Realm names the protected-resource realm reported in
	// WWW-Authenticate challenges.
	Realm() string

	// Response renders tmpl into a concrete Response.
	Response(req Request, tmpl Template) (*Response, error)
}
