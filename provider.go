// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"time"

	"github.com/hooklift/oauth2/types"
)

// Registrar is the client registry, redirect-URI negotiator, scope
// negotiator and client authenticator. Implementations own their storage
// exclusively; the in-memory reference implementation lives in
// providers/memory.
type Registrar interface {
	// BoundRedirect resolves the redirect URI for clientID: if redirectURI
	// is empty, the client's primary URI is used; otherwise it MUST
	// path-equal the primary or one of the client's additional URIs.
	//
	// Errors: ErrUnregisteredClient, ErrMismatchedRedirect, or an
	// unspecified internal error.
	BoundRedirect(ctx context.Context, clientID, redirectURI string) (*types.PreGrant, error)

	// Negotiate computes the negotiated scope for pre: the intersection of
	// requestedScope and the client's default scope when requestedScope is
	// non-empty, otherwise the client's default scope outright. It fails
	// with ErrScopeEscalation if requestedScope is not a subset of the
	// client's default scope.
	//
	// http://tools.ietf.org/html/rfc6749#section-3.3
	Negotiate(ctx context.Context, pre *types.PreGrant, requestedScope string) (*types.PreGrant, error)

	// Check authenticates a client. For Public clients passphrase MUST be
	// empty. For Confidential clients passphrase is verified against the
	// stored hash in constant time. Every failure — unknown client, wrong
	// secret, public-used-as-confidential — collapses to
	// ErrUnspecifiedAuth to avoid leaking which one occurred.
	Check(ctx context.Context, clientID, passphrase string) error

	// Client returns the full client record, used by flows that need more
	// than BoundRedirect/Check expose (e.g. the client's default scope
	// during the client-credentials grant).
	Client(ctx context.Context, clientID string) (*types.Client, error)
}

// PasswordPolicy is the replaceable strategy object used by a Registrar to
// hash and verify confidential-client secrets. Implementations must use
// fresh random salts and constant-time verification.
type PasswordPolicy interface {
	// Store hashes passphrase for clientID and returns the opaque encoded
	// hash to persist on the client record.
	Store(clientID, passphrase string) (string, error)
	// Check verifies passphrase against opaqueHash in constant time.
	Check(clientID, passphrase, opaqueHash string) error
}

// Authorizer mints authorization codes and redeems them exactly once.
type Authorizer interface {
	// Authorize produces an opaque, unforgeable, single-use code bound to
	// grant.
	Authorize(ctx context.Context, grant types.Grant) (code string, err error)

	// Extract returns the grant bound to code if, and only if, this is the
	// first call to Extract for that code and the code has not expired.
	// The removal of the code is atomic with its extraction: a concurrent
	// or later call with the same code returns (nil, nil).
	Extract(ctx context.Context, code string) (*types.Grant, error)
}

// TagGrant is the pluggable tag/token generator used by the in-memory
// reference primitives. counter is strictly monotonic per issuer instance,
// which is what lets a collision-resistant but otherwise non-deterministic
// implementation guarantee Generate never repeats a tag for two successive
// calls against an equal grant.
type TagGrant interface {
	Generate(counter uint64, grant *types.Grant) (tag string, err error)
}

// Issuer mints access and refresh tokens from a grant, recovers grants from
// either token, and refreshes.
type Issuer interface {
	// Issue mints a token for grant. The returned token's Until derives
	// from grant.Until.
	Issue(ctx context.Context, grant types.Grant) (*types.IssuedToken, error)

	// RecoverToken looks up the grant behind an access token. Returns
	// (nil, nil) if the token is unknown.
	RecoverToken(ctx context.Context, access string) (*types.Grant, error)

	// RecoverRefresh looks up the grant behind a refresh token. Returns
	// (nil, nil) if the token is unknown.
	RecoverRefresh(ctx context.Context, refresh string) (*types.Grant, error)

	// Refresh mints a new token for narrowedGrant, the grant derived from
	// refresh after the flow has applied any scope narrowing. Whether the
	// refresh token itself is rotated is an issuer-internal policy
	// decision.
	Refresh(ctx context.Context, refresh string, narrowedGrant types.Grant) (*types.IssuedToken, error)

	// Revoke expires access or refresh token immediately.
	// http://tools.ietf.org/html/rfc7009
	Revoke(ctx context.Context, token string) error
}

// OwnerConsentKind enumerates the four OwnerConsent variants.
type OwnerConsentKind int

const (
	// Authorized means the owner granted access; OwnerConsent.OwnerID is
	// populated.
	Authorized OwnerConsentKind = iota
	// Denied means the owner explicitly refused access.
	Denied
	// InProgress means consent has not yet been decided; OwnerConsent.Response
	// must be returned to the user agent verbatim (e.g. a consent page).
	InProgress
	// ConsentError means the solicitor failed internally.
	ConsentError
)

// OwnerConsent is the outcome of OwnerSolicitor.CheckConsent.
type OwnerConsent struct {
	// Kind selects which of the remaining fields is meaningful.
	Kind OwnerConsentKind
	// OwnerID is set when Kind is Authorized; it must be a stable,
	// non-empty identifier.
	OwnerID string
	// Response is set when Kind is InProgress: the solicitor's response
	// (typically a consent page) to return to the user agent verbatim.
	Response *Response
	// Err is set when Kind is ConsentError.
	Err error
}

// OwnerSolicitor mediates end-user consent during the authorization flow.
type OwnerSolicitor interface {
	CheckConsent(ctx context.Context, req Request, pre *types.PreGrant) OwnerConsent
}

// ExtensionPhase identifies one of the three points at which extensions
// observe and modify a grant.
type ExtensionPhase int

const (
	// PhaseAuthorization runs during the authorization request, after scope
	// negotiation and before owner consent is solicited and the grant is
	// minted into an authorization code.
	PhaseAuthorization ExtensionPhase = iota
	// PhaseAccessToken runs during the authorization_code access-token
	// request, after the code has been redeemed, and during the
	// client_credentials request, before the token is issued.
	PhaseAccessToken
	// PhaseRefresh runs during a refresh_token request, after scope
	// narrowing.
	PhaseRefresh
)

// ExtensionOutcome is what an Extension hook returns.
type ExtensionOutcome struct {
	// Reject, if non-nil, aborts the flow with this error.
	Reject *types.OAuthError
	// Values, if non-nil, are merged into the grant's Extensions map under
	// this extension's identifier.
	Values map[string]types.ExtensionValue
}

// Extension observes and modifies grants at the three hook points defined
// by ExtensionPhase. The core passes a single aggregate Extension (e.g.
// frontend/simple's AddonList) to each flow so cross-cutting extensions can
// coordinate with each other.
type Extension interface {
	Run(ctx context.Context, phase ExtensionPhase, req Request, grant *types.Grant) ExtensionOutcome
}

// defaultCodeTTL is the authorization-code lifetime Authorize applies when
// Endpoint.CodeTTL returns zero or less, per the RFC 6749 recommendation of
// a short authorization-code lifetime.
const defaultCodeTTL = 10 * time.Minute
