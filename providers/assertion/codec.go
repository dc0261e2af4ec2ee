// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package assertion provides self-contained, JWT-backed oauth2.Authorizer
// and oauth2.Issuer implementations: the grant is MAC'd into the token
// itself with HS256, rather than looked up from server-side storage. This
// trades revocability for statelessness — a server can validate a token
// without a round trip to a database, at the cost of needing an explicit
// denylist for revocation.
package assertion

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hooklift/oauth2/types"
)

// tagClaim distinguishes the three token roles a Codec can encode so that
// one role's token can never be replayed as another's: "code", "access" or
// "refresh".
const tagClaim = "tag"
const counterClaim = "ctr"

// ErrWrongTag is returned by Decode when the token decodes and verifies
// but was minted for a different role than expected.
var ErrWrongTag = errors.New("oauth2/assertion: token was not issued for this purpose")

// ErrPrivateExtension is returned by Encode when grant carries a private
// extension value. Assertion tokens are handed to the client, so silently
// dropping a private value (e.g. a PKCE challenge) would let the extension
// that relies on it be bypassed; Encode refuses the grant outright instead.
var ErrPrivateExtension = errors.New("oauth2/assertion: grant carries a private extension value")

// Codec MACs a types.Grant into a compact JWT and back, using a single
// symmetric key shared by every Codec instance that must agree on tokens.
type Codec struct {
	key []byte
}

// NewCodec builds a Codec signing and verifying with key. key should be at
// least 32 bytes of high-entropy data.
func NewCodec(key []byte) *Codec {
	return &Codec{key: key}
}

// Encode MACs grant into a JWT tagged with role and counter. Only public
// extension values are carried: assertion-backed tokens are handed to the
// client, so a private extension value (e.g. a PKCE challenge) must never
// ride along in them.
func (c *Codec) Encode(role string, counter uint64, grant types.Grant) (string, error) {
	claims := jwt.MapClaims{
		"sub":        grant.OwnerID,
		"client_id":  grant.ClientID,
		"scope":      grant.Scope.String(),
		"exp":        grant.Until.Unix(),
		tagClaim:     role,
		counterClaim: strconv.FormatUint(counter, 10),
	}
	if grant.RedirectURI != nil {
		claims["redirect_uri"] = grant.RedirectURI.String()
	}
	if len(grant.Extensions) > 0 {
		ext := make(map[string]string, len(grant.Extensions))
		for k, v := range grant.Extensions {
			if !v.Public {
				return "", fmt.Errorf("oauth2/assertion: extension %q: %w", k, ErrPrivateExtension)
			}
			ext[k] = v.Value
		}
		claims["ext"] = ext
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Decode verifies tokenStr's signature and expiry and unpacks it back into
// a types.Grant, failing unless its tag claim equals wantRole.
func (c *Codec) Decode(tokenStr, wantRole string) (*types.Grant, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil
		}
		return nil, fmt.Errorf("oauth2/assertion: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("oauth2/assertion: unexpected claims type %T", token.Claims)
	}

	role, _ := claims[tagClaim].(string)
	if role != wantRole {
		return nil, ErrWrongTag
	}

	grant := types.Grant{
		OwnerID:  stringClaim(claims, "sub"),
		ClientID: stringClaim(claims, "client_id"),
	}

	if raw := stringClaim(claims, "redirect_uri"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("oauth2/assertion: malformed redirect_uri claim: %w", err)
		}
		grant.RedirectURI = u
	}

	scope, err := types.ParseScope(stringClaim(claims, "scope"))
	if err != nil {
		return nil, fmt.Errorf("oauth2/assertion: malformed scope claim: %w", err)
	}
	grant.Scope = scope

	if exp, ok := claims["exp"]; ok {
		if f, ok := exp.(float64); ok {
			grant.Until = time.Unix(int64(f), 0)
		}
	}

	if rawExt, ok := claims["ext"].(map[string]interface{}); ok {
		grant.Extensions = make(map[string]types.ExtensionValue, len(rawExt))
		for k, v := range rawExt {
			if s, ok := v.(string); ok {
				grant.Extensions[k] = types.ExtensionValue{Value: s, Public: true}
			}
		}
	}

	return &grant, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
