// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"time"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// Endpoint is a ready-to-use oauth2.Endpoint assembled from functional
// options. Its zero value is unusable; build one with New.
type Endpoint struct {
	registrar  oauth2.Registrar
	authorizer oauth2.Authorizer
	issuer     oauth2.Issuer
	solicitor  oauth2.OwnerSolicitor
	extension  oauth2.Extension
	scopes     []types.Scopes

	codeTTL                 time.Duration
	allowClientSecretInBody bool
	realm                   string
	allowedGrants           map[string]bool
}

// Option configures an Endpoint built by New.
type Option func(*Endpoint)

// WithRegistrar sets the client registry.
func WithRegistrar(r oauth2.Registrar) Option {
	return func(e *Endpoint) { e.registrar = r }
}

// WithAuthorizer sets the authorization-code primitive.
func WithAuthorizer(a oauth2.Authorizer) Option {
	return func(e *Endpoint) { e.authorizer = a }
}

// WithIssuer sets the access/refresh token primitive.
func WithIssuer(i oauth2.Issuer) Option {
	return func(e *Endpoint) { e.issuer = i }
}

// WithSolicitor sets the owner-consent primitive.
func WithSolicitor(s oauth2.OwnerSolicitor) Option {
	return func(e *Endpoint) { e.solicitor = s }
}

// WithExtension sets the extension run at each flow's hook points. To run
// more than one, wrap them in an AddonList.
func WithExtension(ext oauth2.Extension) Option {
	return func(e *Endpoint) { e.extension = ext }
}

// WithScopes sets the scope alternatives a protected resource accepts; the
// Resource flow succeeds if the grant is privileged to any one of them.
func WithScopes(alternatives ...types.Scopes) Option {
	return func(e *Endpoint) { e.scopes = alternatives }
}

// WithCodeTTL overrides the authorization code lifetime.
func WithCodeTTL(ttl time.Duration) Option {
	return func(e *Endpoint) { e.codeTTL = ttl }
}

// WithClientSecretInBody opts into RFC 6749 §2.3.1's NOT RECOMMENDED
// client_id+client_secret body authentication at /token, in addition to
// HTTP Basic.
func WithClientSecretInBody(allow bool) Option {
	return func(e *Endpoint) { e.allowClientSecretInBody = allow }
}

// WithRealm sets the protected-resource realm reported in WWW-Authenticate
// challenges.
func WithRealm(realm string) Option {
	return func(e *Endpoint) { e.realm = realm }
}

// WithAllowedGrants restricts which grant_type values the /token endpoint
// accepts, e.g. to disable client_credentials on a deployment that never
// wants it. With no call to this option every grant Token implements is
// accepted.
func WithAllowedGrants(grantTypes ...string) Option {
	return func(e *Endpoint) {
		e.allowedGrants = make(map[string]bool, len(grantTypes))
		for _, g := range grantTypes {
			e.allowedGrants[g] = true
		}
	}
}

// New builds an Endpoint from opts. A flow run against an Endpoint missing
// one of its required primitives fails with oauth2.ErrPrimitiveMissing
// rather than panicking.
func New(opts ...Option) *Endpoint {
	e := &Endpoint{realm: "oauth2"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Endpoint) Registrar() oauth2.Registrar      { return e.registrar }
func (e *Endpoint) Authorizer() oauth2.Authorizer    { return e.authorizer }
func (e *Endpoint) Issuer() oauth2.Issuer            { return e.issuer }
func (e *Endpoint) Scopes() []types.Scopes           { return e.scopes }
func (e *Endpoint) Solicitor() oauth2.OwnerSolicitor { return e.solicitor }
func (e *Endpoint) Extension() oauth2.Extension      { return e.extension }

func (e *Endpoint) CodeTTL() time.Duration {
	return e.codeTTL
}

func (e *Endpoint) AllowClientSecretInBody() bool { return e.allowClientSecretInBody }

// GrantAllowed implements oauth2.Endpoint.
func (e *Endpoint) GrantAllowed(grantType string) bool {
	if e.allowedGrants == nil {
		return true
	}
	return e.allowedGrants[grantType]
}

func (e *Endpoint) Realm() string { return e.realm }

// Response implements oauth2.Endpoint by delegating to Render.
func (e *Endpoint) Response(_ oauth2.Request, tmpl oauth2.Template) (*oauth2.Response, error) {
	return Render(tmpl)
}
