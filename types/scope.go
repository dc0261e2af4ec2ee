// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package types

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidScope is returned by ParseScope when the input violates the
// scope grammar of http://tools.ietf.org/html/rfc6749#section-3.3:
//
//	scope       = scope-token *( SP scope-token )
//	scope-token = 1*( %x21 / %x23-5B / %x5D-7E )
var ErrInvalidScope = errors.New("oauth2: invalid scope")

// Scopes is an unordered set of case-sensitive scope tokens. The zero value
// is the empty set.
type Scopes map[string]struct{}

// ParseScope parses a space-separated scope string. An empty string yields
// an empty, non-nil Scopes. Duplicate tokens collapse. Any token outside the
// scope-token charset, or an empty token produced by repeated spaces, is a
// hard error.
func ParseScope(s string) (Scopes, error) {
	scopes := make(Scopes)
	if strings.TrimSpace(s) == "" {
		return scopes, nil
	}

	for _, tok := range strings.Split(s, " ") {
		if tok == "" {
			return nil, ErrInvalidScope
		}
		if !validScopeToken(tok) {
			return nil, ErrInvalidScope
		}
		scopes[tok] = struct{}{}
	}
	return scopes, nil
}

func validScopeToken(tok string) bool {
	for _, r := range tok {
		switch {
		case r == 0x21:
		case r >= 0x23 && r <= 0x5B:
		case r >= 0x5D && r <= 0x7E:
		default:
			return false
		}
	}
	return true
}

// NewScopes builds a Scopes set from individual tokens, for use by
// primitives constructing grants programmatically.
func NewScopes(toks ...string) Scopes {
	scopes := make(Scopes, len(toks))
	for _, t := range toks {
		scopes[t] = struct{}{}
	}
	return scopes
}

// Empty reports whether the set has no tokens.
func (s Scopes) Empty() bool {
	return len(s) == 0
}

// Has reports whether tok is a member of the set.
func (s Scopes) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Privileges reports whether s is privileged to other, i.e. s ⊑ other,
// defined as s ⊇ other: every token required by other is present in s.
func (s Scopes) Privileges(other Scopes) bool {
	for tok := range other {
		if !s.Has(tok) {
			return false
		}
	}
	return true
}

// Intersect returns the set intersection s ⊓ other.
func (s Scopes) Intersect(other Scopes) Scopes {
	out := make(Scopes)
	for tok := range s {
		if other.Has(tok) {
			out[tok] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s Scopes) Clone() Scopes {
	out := make(Scopes, len(s))
	for tok := range s {
		out[tok] = struct{}{}
	}
	return out
}

// String serializes the set in canonical order: space-separated, sorted
// lexicographically so that two equal sets always produce the same string.
func (s Scopes) String() string {
	toks := make([]string, 0, len(s))
	for tok := range s {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
