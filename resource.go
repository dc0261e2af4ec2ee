// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2

import (
	"context"
	"errors"
	"strings"

	"github.com/hooklift/oauth2/types"
)

// errMalformedAuth signals a present but unparsable Authorization header.
var errMalformedAuth = errors.New("oauth2: malformed Authorization header")

// Resource validates the Bearer token attached to req and reports whether
// the grant behind it is privileged to access the protected resource.
//
//  1. extract the token from the Authorization header or access_token form
//     field, per http://tools.ietf.org/html/rfc6750#section-2
//  2. recover its grant through Issuer.RecoverToken
//  3. reject an unknown, expired or insufficiently-scoped token with the
//     matching WWW-Authenticate challenge.
//     http://tools.ietf.org/html/rfc6750#section-3
func Resource(ctx context.Context, ep Endpoint, req Request) (*Response, error) {
	issuer := ep.Issuer()
	if issuer == nil {
		return nil, ErrPrimitiveMissing
	}

	token, err := bearerToken(req)
	if err != nil {
		return ep.Response(req, challengeTmpl(ep.Realm(), KindUnauthorized, "invalid_request", "malformed Authorization header"))
	}
	if token == "" {
		return ep.Response(req, Template{Kind: KindUnauthorized, Challenge: `Bearer realm="` + ep.Realm() + `"`})
	}

	grant, err := issuer.RecoverToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) {
			return ep.Response(req, challengeTmpl(ep.Realm(), KindUnauthorized, "invalid_token", "the access token is invalid or expired"))
		}
		return ep.Response(req, Template{Kind: KindServerError, JSON: errServerError(err)})
	}
	if grant == nil {
		return ep.Response(req, challengeTmpl(ep.Realm(), KindUnauthorized, "invalid_token", "the access token is invalid or expired"))
	}

	if alternatives := ep.Scopes(); len(alternatives) > 0 {
		satisfied := false
		for _, need := range alternatives {
			if grant.Scope.Privileges(need) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return ep.Response(req, scopeChallengeTmpl(ep.Realm(), requiredScope(alternatives), "insufficient_scope", "token does not carry a sufficient scope for this resource"))
		}
	}

	return ep.Response(req, Template{Kind: KindOK, JSON: grant})
}

// requiredScope unions a resource's scope alternatives into the single
// space-separated token list reported by the insufficient_scope challenge,
// per http://tools.ietf.org/html/rfc6750#section-3.1.
func requiredScope(alternatives []types.Scopes) string {
	union := make(types.Scopes)
	for _, alt := range alternatives {
		for tok := range alt {
			union[tok] = struct{}{}
		}
	}
	return union.String()
}

func bearerToken(req Request) (string, error) {
	if auth := req.Header("Authorization"); auth != "" {
		const prefix = "Bearer "
		if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
			return "", errMalformedAuth
		}
		return strings.TrimSpace(auth[len(prefix):]), nil
	}

	form, err := req.Form()
	if err != nil {
		return "", err
	}
	return form.Get("access_token"), nil
}

func challengeTmpl(realm string, kind ResponseKind, code, desc string) Template {
	return Template{
		Kind:      kind,
		Challenge: `Bearer realm="` + realm + `", error="` + code + `", error_description="` + desc + `"`,
		JSON:      &types.OAuthError{Code: code, Description: desc},
	}
}

// scopeChallengeTmpl is challengeTmpl plus the scope="…" attribute required
// on an insufficient_scope challenge. http://tools.ietf.org/html/rfc6750#section-3.1
func scopeChallengeTmpl(realm, scope, code, desc string) Template {
	return Template{
		Kind:      KindForbidden,
		Challenge: `Bearer realm="` + realm + `", scope="` + scope + `", error="` + code + `", error_description="` + desc + `"`,
		JSON:      &types.OAuthError{Code: code, Description: desc},
	}
}
