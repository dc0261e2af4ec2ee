// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package pkce implements Proof Key for Code Exchange, RFC 7636, as an
// oauth2.Extension: the canonical extension for the core, run at the
// authorization and access-token hook points.
package pkce

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"regexp"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// ID is the extension identifier under which the challenge/method pair is
// stored in a Grant's private extension values.
const ID = "pkce"

const (
	methodPlain = "plain"
	methodS256  = "S256"
)

// verifierCharset is RFC 7636's unreserved URI charset, 43-128 chars.
var verifierCharset = regexp.MustCompile(`^[A-Za-z0-9._~-]{43,128}$`)

// Extension implements oauth2.Extension for PKCE.
//
// RequireForPublic, when true, rejects any authorization request that omits
// code_challenge — RFC 7636 recommends but does not mandate this; it is a
// policy knob. The extension does not look up the client's kind, so the
// rule applies to Confidential clients as well as Public ones.
type Extension struct {
	RequireForPublic bool
}

// New builds a PKCE extension with the given public-client policy.
func New(requireForPublic bool) *Extension {
	return &Extension{RequireForPublic: requireForPublic}
}

// Run implements oauth2.Extension.
func (e *Extension) Run(_ context.Context, phase oauth2.ExtensionPhase, req oauth2.Request, grant *types.Grant) oauth2.ExtensionOutcome {
	switch phase {
	case oauth2.PhaseAuthorization:
		return e.authorize(req)
	case oauth2.PhaseAccessToken:
		return e.verify(req, grant)
	default:
		return oauth2.ExtensionOutcome{}
	}
}

func (e *Extension) authorize(req oauth2.Request) oauth2.ExtensionOutcome {
	query, err := req.Query()
	if err != nil {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidRequest,
			Description: "malformed query string",
		}}
	}

	challenge := query.Get("code_challenge")
	method := query.Get("code_challenge_method")
	if method == "" {
		method = methodPlain
	}

	if challenge == "" {
		if e.RequireForPublic {
			return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
				Code:        types.ErrCodeInvalidRequest,
				Description: "code_challenge is required for public clients",
			}}
		}
		return oauth2.ExtensionOutcome{}
	}

	if method != methodPlain && method != methodS256 {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidRequest,
			Description: "code_challenge_method must be \"plain\" or \"S256\"",
		}}
	}

	return oauth2.ExtensionOutcome{
		Values: map[string]types.ExtensionValue{
			ID: {Value: method + ":" + challenge, Public: false},
		},
	}
}

func (e *Extension) verify(req oauth2.Request, grant *types.Grant) oauth2.ExtensionOutcome {
	stored, ok := grant.Extensions[ID]
	if !ok {
		// No challenge was registered for this grant: PKCE was not used at
		// authorization time, so there is nothing to verify here.
		return oauth2.ExtensionOutcome{}
	}

	method, challenge, ok := splitStored(stored.Value)
	if !ok {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidGrant,
			Description: "corrupt PKCE challenge",
		}}
	}

	form, err := req.Form()
	if err != nil {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidRequest,
			Description: "malformed form body",
		}}
	}

	verifier := form.Get("code_verifier")
	if !verifierCharset.MatchString(verifier) {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidGrant,
			Description: "code_verifier is missing or malformed",
		}}
	}

	if !matches(method, challenge, verifier) {
		return oauth2.ExtensionOutcome{Reject: &types.OAuthError{
			Code:        types.ErrCodeInvalidGrant,
			Description: "code_verifier does not match code_challenge",
		}}
	}

	return oauth2.ExtensionOutcome{}
}

func matches(method, challenge, verifier string) bool {
	var computed string
	switch method {
	case methodS256:
		sum := sha256.Sum256([]byte(verifier))
		computed = base64.RawURLEncoding.EncodeToString(sum[:])
	default: // methodPlain
		computed = verifier
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) == 1
}

func splitStored(v string) (method, challenge string, ok bool) {
	for i := 0; i < len(v); i++ {
		if v[i] == ':' {
			return v[:i], v[i+1:], true
		}
	}
	return "", "", false
}
